package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/notesafe/notesafe/models"
)

// UserRepository is the persistence boundary for accounts and their
// end-to-end encryption material.
type UserRepository interface {
	// CreateUser persists a new account. Key material, when supplied, must
	// satisfy the both-or-neither invariant.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin looks an account up by its login.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)

	// FindUserByID looks an account up by its internal identifier.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// SetKeyMaterialIfAbsent atomically writes the (kekSalt, wrappedDek)
	// pair only when the account has none, returning ErrKeyMaterialExists
	// otherwise.
	SetKeyMaterialIfAbsent(ctx context.Context, userID int64, kekSalt, wrappedDek string) (models.User, error)
}

// NoteRepository is the persistence boundary for notes. Stored fields are
// opaque text; no encryption concern reaches this layer.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	ListNotes(ctx context.Context, userID int64) ([]models.NoteListItem, error)
	FindNoteByID(ctx context.Context, noteID string, userID int64) (models.Note, error)
	UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, noteID string, userID int64) error
}
