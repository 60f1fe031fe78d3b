package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/internal/service"
	"github.com/notesafe/notesafe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != "valid-token" {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: 7}, nil
		},
	}
	notes := &mockNoteService{
		listNotesFn: func(_ context.Context, _ int64) ([]models.NoteListItem, error) {
			return []models.NoteListItem{}, nil
		},
		getNoteFn: func(_ context.Context, noteID string, userID int64) (models.Note, error) {
			return models.Note{ID: noteID, UserID: userID}, nil
		},
	}

	h := NewHandler(&service.Services{AuthService: auth, NoteService: notes}, logger.Nop())
	return h.Init()
}

func TestRoutes_AuthedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t)

	for _, route := range []struct{ method, target string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/keys"},
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/notes/some-id"},
		{http.MethodPut, "/api/notes/some-id"},
		{http.MethodDelete, "/api/notes/some-id"},
	} {
		req := httptest.NewRequest(route.method, route.target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.target)
	}
}

func TestRoutes_BearerTokenReachesNoteHandlers(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRoutes_URLParamFlowsToHandler(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/note-abc", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "note-abc")
}

func TestRoutes_TraceIDHeaderAlwaysSet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestRoutes_IncomingTraceIDPropagated(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set(traceIDHeader, "trace-from-upstream")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-from-upstream", rec.Header().Get(traceIDHeader))
}
