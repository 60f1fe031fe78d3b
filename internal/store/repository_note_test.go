package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/models"
)

func newTestNoteRepo(t *testing.T) (*noteRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &noteRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func noteColumns() []string {
	return []string{"id", "user_id", "title", "content", "created_at", "updated_at"}
}

func TestCreateNote_AssignsID(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO notes").
		WithArgs(sqlmock.AnyArg(), int64(1), "e2ee:dGl0bGU=", "e2ee:Ym9keQ==").
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow("11111111-2222-3333-4444-555555555555", int64(1), "e2ee:dGl0bGU=", "e2ee:Ym9keQ==", now, now))

	note, err := repo.CreateNote(context.Background(), models.Note{
		UserID:  1,
		Title:   "e2ee:dGl0bGU=",
		Content: "e2ee:Ym9keQ==",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.ID == "" {
		t.Errorf("expected a note ID, got empty")
	}
	if note.Title != "e2ee:dGl0bGU=" {
		t.Errorf("title stored verbatim mismatch: %q", note.Title)
	}
}

func TestListNotes_ProjectionOrder(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	newer := time.Now()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "updated_at"}).
			AddRow("id-newer", "second note", newer).
			AddRow("id-older", "first note", older))

	items, err := repo.ListNotes(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "id-newer" || items[1].ID != "id-older" {
		t.Errorf("expected newest-first order, got %+v", items)
	}
}

func TestListNotes_EmptyResult(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "updated_at"}))

	items, err := repo.ListNotes(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", items)
	}
}

func TestFindNoteByID_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs("no-such-id", int64(1)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindNoteByID(context.Background(), "no-such-id", 1)
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestFindNoteByID_ScopedToOwner(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs("note-1", int64(42)).
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow("note-1", int64(42), "title", "content", now, now))

	note, err := repo.FindNoteByID(context.Background(), "note-1", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.UserID != 42 {
		t.Errorf("expected owner 42, got %d", note.UserID)
	}
}

func TestUpdateNote_TitleOnly(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	title := "new title"
	now := time.Now()

	mock.ExpectQuery("UPDATE notes").
		WithArgs(title, "note-1", int64(1)).
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow("note-1", int64(1), title, "old content", now, now))

	note, err := repo.UpdateNote(context.Background(), models.NoteUpdate{
		ID:     "note-1",
		UserID: 1,
		Title:  &title,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Title != title {
		t.Errorf("expected title %q, got %q", title, note.Title)
	}
}

func TestUpdateNote_NoFields(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	_, err := repo.UpdateNote(context.Background(), models.NoteUpdate{ID: "note-1", UserID: 1})
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database interaction: %v", err)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	title := "new title"
	mock.ExpectQuery("UPDATE notes").
		WithArgs(title, "no-such-id", int64(1)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateNote(context.Background(), models.NoteUpdate{
		ID:     "no-such-id",
		UserID: 1,
		Title:  &title,
	})
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestDeleteNote_Success(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs("note-1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteNote(context.Background(), "note-1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteNote_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs("no-such-id", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteNote(context.Background(), "no-such-id", 1); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}
