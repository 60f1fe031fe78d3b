package service

import (
	"context"
	"fmt"

	"github.com/notesafe/notesafe/internal/crypto"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/internal/store"
	"github.com/notesafe/notesafe/models"
)

// noteService is the concrete implementation of NoteService.
//
// Writes store field values verbatim: content arrives from the client
// already sealed under its DEK (or, for pre-migration clients, as
// plaintext) and the server must not reinterpret it. Reads pass every
// field through the content resolver, which decrypts the legacy tier and
// passes the other two tiers through untouched.
type noteService struct {
	noteRepository store.NoteRepository
	resolver       *crypto.Resolver
	logger         *logger.Logger
}

// NewNoteService constructs a NoteService over the given repository and
// content resolver.
func NewNoteService(noteRepository store.NoteRepository, resolver *crypto.Resolver, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		resolver:       resolver,
		logger:         logger,
	}
}

// CreateNote persists a new note for userID. Title and content are stored
// exactly as received.
func (n *noteService) CreateNote(ctx context.Context, userID int64, title, content string) (models.Note, error) {
	note := models.Note{
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	saved, err := n.noteRepository.CreateNote(ctx, note)
	if err != nil {
		return models.Note{}, fmt.Errorf("note creation failed: %w", err)
	}

	return n.resolveNote(ctx, saved), nil
}

// ListNotes returns the user's notes newest-first. Each title is resolved
// independently: a single list may mix end-to-end, legacy and plaintext
// titles across rows.
func (n *noteService) ListNotes(ctx context.Context, userID int64) ([]models.NoteListItem, error) {
	items, err := n.noteRepository.ListNotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("note listing failed: %w", err)
	}

	for i := range items {
		log := logger.FromContext(ctx).With().Str("note_id", items[i].ID).Logger()
		items[i].Title = n.resolver.Resolve(log.WithContext(ctx), items[i].Title)
	}
	return items, nil
}

// GetNote returns a single note with both fields resolved. Title and
// content are resolved independently; a note may carry a legacy title and
// an end-to-end body at the same time.
func (n *noteService) GetNote(ctx context.Context, noteID string, userID int64) (models.Note, error) {
	note, err := n.noteRepository.FindNoteByID(ctx, noteID, userID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return n.resolveNote(ctx, note), nil
}

// UpdateNote applies a partial update and returns the updated, resolved
// note. Incoming fields are stored verbatim, like on create.
func (n *noteService) UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	note, err := n.noteRepository.UpdateNote(ctx, update)
	if err != nil {
		return models.Note{}, fmt.Errorf("note update failed: %w", err)
	}

	return n.resolveNote(ctx, note), nil
}

// DeleteNote removes a note scoped to its owner.
func (n *noteService) DeleteNote(ctx context.Context, noteID string, userID int64) error {
	if err := n.noteRepository.DeleteNote(ctx, noteID, userID); err != nil {
		return fmt.Errorf("note deletion failed: %w", err)
	}
	return nil
}

func (n *noteService) resolveNote(ctx context.Context, note models.Note) models.Note {
	// Scope the logger so resolver warnings name the affected note.
	log := logger.FromContext(ctx).With().Str("note_id", note.ID).Logger()
	ctx = log.WithContext(ctx)

	note.Title = n.resolver.Resolve(ctx, note.Title)
	note.Content = n.resolver.Resolve(ctx, note.Content)
	return note
}
