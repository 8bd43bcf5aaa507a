package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarev/go-user-service/internal/service"
	"github.com/mkarev/go-user-service/internal/utils"
	"github.com/mkarev/go-user-service/models"
)

func TestAuthMiddleware_Success(t *testing.T) {
	resolved := models.User{ID: 7, Email: "user@example.com", Active: true}

	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, rawToken string) (models.User, error) {
			assert.Equal(t, "valid.jwt.token", rawToken)
			return resolved, nil
		},
	}
	h := newHandlerWithAuth(t, auth)

	var gotUser models.User
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotOK = utils.GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK, "resolved account must be stored in the request context")
	assert.Equal(t, resolved, gotUser)
}

func TestAuthMiddleware_HeaderVariantsReachResolverAsEmptyToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"scheme without token", "Bearer"},
		{"empty token after scheme", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var receivedToken string
			auth := &mockAuthService{
				authenticateFn: func(_ context.Context, rawToken string) (models.User, error) {
					receivedToken = rawToken
					return models.User{}, service.ErrUnauthenticated
				},
			}
			h := newHandlerWithAuth(t, auth)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not be called for rejected requests")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.auth(next).ServeHTTP(rec, req)

			assert.Empty(t, receivedToken)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

// TestAuthMiddleware_UniformRejectionBody verifies that every authentication
// failure produces the same response body, whatever the underlying reason.
func TestAuthMiddleware_UniformRejectionBody(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, service.ErrUnauthenticated
		},
	}
	h := newHandlerWithAuth(t, auth)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	var bodies []string
	for _, header := range []string{"", "Bearer expired.jwt.token", "Bearer garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		h.auth(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}

func TestAuthMiddleware_UnexpectedError(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, errors.New("db unreachable")
		},
	}
	h := newHandlerWithAuth(t, auth)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db unreachable")
}
