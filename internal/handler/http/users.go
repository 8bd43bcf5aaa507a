package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkarev/go-user-service/internal/logger"
	"github.com/mkarev/go-user-service/internal/service"
	"github.com/mkarev/go-user-service/internal/store"
	"github.com/mkarev/go-user-service/internal/utils"
	"github.com/mkarev/go-user-service/models"
)

// me returns the profile of the authenticated account resolved by the auth
// middleware.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		writeError(w, service.ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		writeError(w, service.ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid user id in path")
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.GetUserByID(ctx, actor, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			log.Err(err).Int64("id", id).Msg("user not found")
			writeError(w, service.ErrUserNotFound.Error(), http.StatusNotFound)
			return
		default:
			log.Err(err).Int64("id", id).Msg("unexpected error occurred during user lookup")
			writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	page, err := queryInt(r, "page", 1)
	if err != nil {
		log.Err(err).Msg("invalid page query parameter")
		writeError(w, "invalid page parameter", http.StatusBadRequest)
		return
	}

	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		log.Err(err).Msg("invalid limit query parameter")
		writeError(w, "invalid limit parameter", http.StatusBadRequest)
		return
	}

	users, pagination, err := h.services.UserService.ListUsers(ctx, page, limit)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during user listing")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, models.NewUserResponse(user))
	}

	utils.WriteJSON(w, models.UserListResponse{
		Users:      responses,
		Pagination: pagination,
	}, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actor, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		writeError(w, service.ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid user id in path")
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var patch models.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedUser, err := h.services.UserService.UpdateUser(ctx, actor, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Int64("id", id).Msg("invalid data provided")
			writeError(w, service.ErrInvalidDataProvided.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrUserNotFound):
			log.Err(err).Int64("id", id).Msg("user not found")
			writeError(w, service.ErrUserNotFound.Error(), http.StatusNotFound)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Int64("id", id).Msg("email already exists")
			writeError(w, "email already registered", http.StatusConflict)
			return
		default:
			log.Err(err).Int64("id", id).Msg("unexpected error occurred during user update")
			writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.NewUserResponse(updatedUser), http.StatusOK)
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent. Range normalisation happens in the service layer.
func queryInt(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	return strconv.ParseInt(raw, 10, 64)
}
