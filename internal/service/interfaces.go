package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/notesafe/notesafe/models"
)

// AuthService covers authentication, session token lifecycle, and the
// first-login provisioning of end-to-end key material.
type AuthService interface {
	// RegisterUser creates an account together with its key material.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies credentials and returns the stored account record,
	// including its key material (or its absence).
	Login(ctx context.Context, login, password string) (models.User, error)

	// GetUser returns the account record for an authenticated user id.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// ProvisionKeyMaterial atomically persists a client-generated
	// (kekSalt, wrappedDek) pair for a pre-migration account, resolving
	// races in favour of the first writer.
	ProvisionKeyMaterial(ctx context.Context, userID int64, kekSalt, wrappedDek string) (models.User, error)

	// CreateToken issues a signed session token for the user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw token string and extracts its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// RenewIfExpiring issues a replacement token when the presented one is
	// inside the sliding renewal window.
	RenewIfExpiring(ctx context.Context, token models.Token) (models.Token, bool)
}

// NoteService covers note CRUD with read-side tier resolution.
type NoteService interface {
	CreateNote(ctx context.Context, userID int64, title, content string) (models.Note, error)
	ListNotes(ctx context.Context, userID int64) ([]models.NoteListItem, error)
	GetNote(ctx context.Context, noteID string, userID int64) (models.Note, error)
	UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, noteID string, userID int64) error
}
