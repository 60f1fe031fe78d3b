package store

import (
	"context"

	"github.com/notesafe/notesafe/internal/config"
	"github.com/notesafe/notesafe/internal/logger"
)

// Storages aggregates all repositories over a single database connection.
type Storages struct {
	UserRepository UserRepository
	NoteRepository NoteRepository
}

// NewStorages connects to the database, runs pending migrations, and wires
// up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		NoteRepository: NewNoteRepository(db, log),
	}, nil
}
