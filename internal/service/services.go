package service

import (
	"github.com/notesafe/notesafe/internal/config"
	"github.com/notesafe/notesafe/internal/crypto"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/internal/store"
)

// Services aggregates all application services.
type Services struct {
	AuthService AuthService
	NoteService NoteService
}

// NewServices wires up the service layer over the repositories and the
// content resolver.
func NewServices(storages *store.Storages, resolver *crypto.Resolver, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg, logger),
		NoteService: NewNoteService(storages.NoteRepository, resolver, logger),
	}
}
