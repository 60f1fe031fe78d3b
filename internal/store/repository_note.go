package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// Title and content are opaque text at this layer: the repository neither
// inspects nor rewrites them; tier resolution happens in the service layer.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNote persists a new note for its owner. A fresh UUID is assigned
// here; CreatedAt/UpdatedAt come back from the database RETURNING clause.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	note.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, createNote, note.ID, note.UserID, note.Title, note.Content)

	saved, err := scanNote(row)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// ListNotes returns the owner's notes newest-first as list projections
// (id, title, updated_at). Content is never fetched for lists.
func (r *noteRepository) ListNotes(ctx context.Context, userID int64) ([]models.NoteListItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listNotesByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.NoteListItem, 0)
	for rows.Next() {
		var item models.NoteListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// FindNoteByID retrieves a single note scoped to its owner.
// Returns [ErrNoteNotFound] when no such note exists for this user.
func (r *noteRepository) FindNoteByID(ctx context.Context, noteID string, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findNoteByID, noteID, userID)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.FindNoteByID").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// UpdateNote applies a partial update built with squirrel and returns the
// updated row. Returns [ErrNoteNotFound] when the note does not exist for
// this user, and [ErrBuildingSQLQuery] when the update carries no fields.
func (r *noteRepository) UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildNoteUpdateQuery(update)
	if err != nil {
		return models.Note{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// DeleteNote removes a note scoped to its owner.
// Returns [ErrNoteNotFound] when nothing was deleted.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID string, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteNote, noteID, userID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func scanNote(row *sql.Row) (models.Note, error) {
	var note models.Note
	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return models.Note{}, err
	}
	return note, nil
}
