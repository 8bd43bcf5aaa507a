package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarev/go-user-service/internal/logger"
	"github.com/mkarev/go-user-service/internal/service"
	"github.com/mkarev/go-user-service/internal/store"
	"github.com/mkarev/go-user-service/internal/utils"
	"github.com/mkarev/go-user-service/models"
)

// ─────────────────────────────────────────────
// Mock UserService
// ─────────────────────────────────────────────

// mockUserService implements service.UserService for unit tests.
type mockUserService struct {
	getUserByIDFn func(ctx context.Context, actor models.User, id int64) (models.User, error)
	listUsersFn   func(ctx context.Context, page, limit int64) ([]models.User, models.Pagination, error)
	updateUserFn  func(ctx context.Context, actor models.User, id int64, patch models.UserUpdateRequest) (models.User, error)
}

func (m *mockUserService) GetUserByID(ctx context.Context, actor models.User, id int64) (models.User, error) {
	return m.getUserByIDFn(ctx, actor, id)
}

func (m *mockUserService) ListUsers(ctx context.Context, page, limit int64) ([]models.User, models.Pagination, error) {
	return m.listUsersFn(ctx, page, limit)
}

func (m *mockUserService) UpdateUser(ctx context.Context, actor models.User, id int64, patch models.UserUpdateRequest) (models.User, error) {
	return m.updateUserFn(ctx, actor, id, patch)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newHandlerWithUsers(t *testing.T, users service.UserService) *Handler {
	t.Helper()
	svcs := &service.Services{
		UserService: users,
	}
	return NewHandler(svcs, logger.Nop())
}

// withActor stores the given account in the request context the way the
// auth middleware would.
func withActor(r *http.Request, actor models.User) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserCtxKey, actor)
	return r.WithContext(ctx)
}

// withURLParam attaches a chi routing context carrying a single URL
// parameter, so handlers can be exercised without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var testActor = models.User{ID: 1, Email: "admin@example.com", Active: true, Admin: true}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	h := newHandlerWithUsers(t, &mockUserService{})

	req := withActor(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil), testActor)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testActor.ID, resp.ID)
	assert.Equal(t, testActor.Email, resp.Email)
}

func TestMe_NoUserInContext(t *testing.T) {
	h := newHandlerWithUsers(t, &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// getUser
// ─────────────────────────────────────────────

func TestGetUser_Success(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, actor models.User, id int64) (models.User, error) {
			assert.Equal(t, testActor.ID, actor.ID)
			assert.Equal(t, int64(7), id)
			return models.User{ID: 7, Email: "user@example.com", Active: true}, nil
		},
	}
	h := newHandlerWithUsers(t, users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/7", nil)
	req = withActor(withURLParam(req, "id", "7"), testActor)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
}

func TestGetUser_InvalidID(t *testing.T) {
	h := newHandlerWithUsers(t, &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil)
	req = withActor(withURLParam(req, "id", "abc"), testActor)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, _ models.User, _ int64) (models.User, error) {
			return models.User{}, service.ErrUserNotFound
		},
	}
	h := newHandlerWithUsers(t, users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/404", nil)
	req = withActor(withURLParam(req, "id", "404"), testActor)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrUserNotFound.Error(), decodeError(t, rec))
}

// ─────────────────────────────────────────────
// listUsers
// ─────────────────────────────────────────────

func TestListUsers_Success(t *testing.T) {
	users := &mockUserService{
		listUsersFn: func(_ context.Context, page, limit int64) ([]models.User, models.Pagination, error) {
			assert.Equal(t, int64(2), page)
			assert.Equal(t, int64(5), limit)
			return []models.User{
					{ID: 6, Email: "f@example.com"},
					{ID: 7, Email: "g@example.com"},
				}, models.Pagination{
					TotalItems:  7,
					TotalPages:  2,
					CurrentPage: 2,
					Limit:       5,
				}, nil
		},
	}
	h := newHandlerWithUsers(t, users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, int64(7), resp.Pagination.TotalItems)
}

func TestListUsers_DefaultsWithoutQueryParams(t *testing.T) {
	users := &mockUserService{
		listUsersFn: func(_ context.Context, page, limit int64) ([]models.User, models.Pagination, error) {
			assert.Equal(t, int64(1), page)
			assert.Equal(t, int64(10), limit)
			return nil, models.Pagination{CurrentPage: 1, Limit: 10}, nil
		},
	}
	h := newHandlerWithUsers(t, users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListUsers_InvalidQueryParam(t *testing.T) {
	h := newHandlerWithUsers(t, &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?page=abc", nil)
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// updateUser
// ─────────────────────────────────────────────

func TestUpdateUser_Success(t *testing.T) {
	newName := "Renamed User"

	users := &mockUserService{
		updateUserFn: func(_ context.Context, actor models.User, id int64, patch models.UserUpdateRequest) (models.User, error) {
			assert.Equal(t, testActor.ID, actor.ID)
			assert.Equal(t, int64(7), id)
			require.NotNil(t, patch.FullName)
			assert.Equal(t, newName, *patch.FullName)
			return models.User{ID: 7, FullName: newName, Active: true}, nil
		},
	}
	h := newHandlerWithUsers(t, users)

	body := jsonBody(t, models.UserUpdateRequest{FullName: &newName})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/7", strings.NewReader(body))
	req = withActor(withURLParam(req, "id", "7"), testActor)
	rec := httptest.NewRecorder()

	h.updateUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, newName, resp.FullName)
}

func TestUpdateUser_InvalidPatch(t *testing.T) {
	users := &mockUserService{
		updateUserFn: func(_ context.Context, _ models.User, _ int64, _ models.UserUpdateRequest) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}
	h := newHandlerWithUsers(t, users)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/7", strings.NewReader("{}"))
	req = withActor(withURLParam(req, "id", "7"), testActor)
	rec := httptest.NewRecorder()

	h.updateUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser_NotFound(t *testing.T) {
	users := &mockUserService{
		updateUserFn: func(_ context.Context, _ models.User, _ int64, _ models.UserUpdateRequest) (models.User, error) {
			return models.User{}, service.ErrUserNotFound
		},
	}
	h := newHandlerWithUsers(t, users)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/404", strings.NewReader(`{"active":false}`))
	req = withActor(withURLParam(req, "id", "404"), testActor)
	rec := httptest.NewRecorder()

	h.updateUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	users := &mockUserService{
		updateUserFn: func(_ context.Context, _ models.User, _ int64, _ models.UserUpdateRequest) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	h := newHandlerWithUsers(t, users)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/7", strings.NewReader(`{"email":"taken@example.com"}`))
	req = withActor(withURLParam(req, "id", "7"), testActor)
	rec := httptest.NewRecorder()

	h.updateUser(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
