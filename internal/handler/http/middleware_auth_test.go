package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/notesafe/notesafe/internal/service"
	"github.com/notesafe/notesafe/internal/utils"
	"github.com/notesafe/notesafe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authedRequest builds a request whose context already carries userID, as
// the auth middleware would have left it.
func authedRequest(method, target, body string, userID int64) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	return req.WithContext(ctx)
}

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing token", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tc := range cases {
		got, err := getTokenFromAuthHeader(tc.header)
		if tc.wantErr != nil {
			assert.ErrorIsf(t, err, tc.wantErr, "case %q", tc.name)
			continue
		}
		require.NoErrorf(t, err, "case %q", tc.name)
		assert.Equalf(t, tc.want, got, "case %q", tc.name)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "valid-token", tokenString)
			return models.Token{UserID: 7}, nil
		},
	})

	var gotUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok, "user id must be stored in the context")
		gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotUserID)
	assert.Empty(t, rec.Header().Get(renewedTokenHeader), "no renewal expected")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_SlidingRenewalHeader(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: 7}, nil
		},
		renewIfExpiringFn: func(_ context.Context, token models.Token) (models.Token, bool) {
			assert.Equal(t, int64(7), token.UserID)
			return stubToken("fresh-token"), true
		},
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer nearly-expired")
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fresh-token", rec.Header().Get(renewedTokenHeader))
}

func TestAuthMiddleware_RenewalFailureDoesNotReject(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: 7}, nil
		},
		renewIfExpiringFn: func(_ context.Context, _ models.Token) (models.Token, bool) {
			return models.Token{}, false
		},
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer nearly-expired")
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(renewedTokenHeader))
}

func TestAuthMiddleware_ParseErrorNormalised(t *testing.T) {
	// the middleware must not leak low-level JWT errors to the client
	h := newHandlerWithAuth(t, &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, errors.New("crypto/hmac: signature mismatch at byte 17")
		},
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hmac")
}
