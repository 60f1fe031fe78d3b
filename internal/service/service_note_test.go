package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/notesafe/notesafe/internal/crypto"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/internal/mock"
	"github.com/notesafe/notesafe/internal/store"
	"github.com/notesafe/notesafe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestNoteSvc(t *testing.T, ctrl *gomock.Controller) (*noteService, *mock.MockNoteRepository, *crypto.LegacyCipher) {
	t.Helper()
	mockNotes := mock.NewMockNoteRepository(ctrl)

	cipher, err := crypto.NewLegacyCipher(strings.Repeat("s", 32))
	if err != nil {
		t.Fatalf("NewLegacyCipher: %v", err)
	}

	svc := NewNoteService(mockNotes, crypto.NewResolver(cipher), logger.Nop()).(*noteService)
	return svc, mockNotes, cipher
}

func TestCreateNote_StoresFieldsVerbatim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes, _ := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	sealedTitle := crypto.MarkerE2EE + "dGl0bGU="
	sealedContent := crypto.MarkerE2EE + "Ym9keQ=="

	mockNotes.EXPECT().CreateNote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, n models.Note) (models.Note, error) {
			assert.Equal(t, sealedTitle, n.Title, "e2ee title must not be reinterpreted on write")
			assert.Equal(t, sealedContent, n.Content)
			n.ID = "note-1"
			return n, nil
		},
	)

	note, err := svc.CreateNote(ctx, 1, sealedTitle, sealedContent)
	require.NoError(t, err)
	assert.Equal(t, "note-1", note.ID)

	// e2ee fields come back untouched on the read side too
	assert.Equal(t, sealedTitle, note.Title)
	assert.Equal(t, sealedContent, note.Content)
}

func TestGetNote_ResolvesLegacyFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes, cipher := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	sealedTitle, err := cipher.SealLegacy("my legacy title")
	require.NoError(t, err)
	sealedContent, err := cipher.SealLegacy("my legacy body")
	require.NoError(t, err)

	mockNotes.EXPECT().FindNoteByID(ctx, "note-1", int64(1)).Return(models.Note{
		ID:      "note-1",
		UserID:  1,
		Title:   sealedTitle,
		Content: sealedContent,
	}, nil)

	note, err := svc.GetNote(ctx, "note-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "my legacy title", note.Title)
	assert.Equal(t, "my legacy body", note.Content)
}

func TestGetNote_MixedTiersResolveIndependently(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes, cipher := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	legacyTitle, err := cipher.SealLegacy("readable title")
	require.NoError(t, err)
	e2eeContent := crypto.MarkerE2EE + "b3BhcXVl"

	mockNotes.EXPECT().FindNoteByID(ctx, "note-1", int64(1)).Return(models.Note{
		ID:      "note-1",
		UserID:  1,
		Title:   legacyTitle,
		Content: e2eeContent,
	}, nil)

	note, err := svc.GetNote(ctx, "note-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "readable title", note.Title)
	assert.Equal(t, e2eeContent, note.Content, "e2ee content must stay ciphertext")
}

func TestGetNote_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes, _ := newTestNoteSvc(t, ctrl)

	mockNotes.EXPECT().FindNoteByID(gomock.Any(), "ghost", int64(1)).
		Return(models.Note{}, store.ErrNoteNotFound)

	_, err := svc.GetNote(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestListNotes_ResolvesEachTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes, cipher := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	legacyTitle, err := cipher.SealLegacy("legacy title")
	require.NoError(t, err)
	e2eeTitle := crypto.MarkerE2EE + "b3BhcXVl"

	now := time.Now()
	mockNotes.EXPECT().ListNotes(ctx, int64(1)).Return([]models.NoteListItem{
		{ID: "a", Title: legacyTitle, UpdatedAt: now},
		{ID: "b", Title: e2eeTitle, UpdatedAt: now},
		{ID: "c", Title: "plain title", UpdatedAt: now},
	}, nil)

	items, err := svc.ListNotes(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "legacy title", items[0].Title)
	assert.Equal(t, e2eeTitle, items[1].Title)
	assert.Equal(t, "plain title", items[2].Title)
}

func TestUpdateNote_ResolvesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes, cipher := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	legacyContent, err := cipher.SealLegacy("old body")
	require.NoError(t, err)

	title := "renamed"
	update := models.NoteUpdate{ID: "note-1", UserID: 1, Title: &title}

	mockNotes.EXPECT().UpdateNote(ctx, update).Return(models.Note{
		ID:      "note-1",
		UserID:  1,
		Title:   title,
		Content: legacyContent,
	}, nil)

	note, err := svc.UpdateNote(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, "renamed", note.Title)
	assert.Equal(t, "old body", note.Content)
}

func TestDeleteNote_PropagatesNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes, _ := newTestNoteSvc(t, ctrl)

	mockNotes.EXPECT().DeleteNote(gomock.Any(), "ghost", int64(1)).Return(store.ErrNoteNotFound)

	err := svc.DeleteNote(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}
