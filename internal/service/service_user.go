package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkarev/go-user-service/internal/audit"
	"github.com/mkarev/go-user-service/internal/config"
	"github.com/mkarev/go-user-service/internal/logger"
	"github.com/mkarev/go-user-service/internal/store"
	"github.com/mkarev/go-user-service/internal/utils"
	"github.com/mkarev/go-user-service/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// userService is the concrete implementation of UserService.
type userService struct {
	// userRepository is the data-access layer for account records.
	userRepository store.UserRepository

	// auditSink receives data-access and user-action events.
	auditSink audit.Sink

	// bcryptCost is the work factor used when an update re-hashes a password.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewUserService constructs a new UserService wired to the given
// UserRepository and audit sink.
func NewUserService(userRepository store.UserRepository, auditSink audit.Sink, cfg config.Auth, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		auditSink:      auditSink,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// GetUserByID retrieves a single account on behalf of actor.
//
// Returns the account or:
//   - ErrUserNotFound if no account has the given id.
//   - A wrapped storage error if the lookup fails for infrastructure reasons.
func (s *userService) GetUserByID(ctx context.Context, actor models.User, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Int64("id", id).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	s.auditSink.Record(ctx, audit.Event{
		Category:    audit.CategoryDataAccess,
		Severity:    audit.SeverityInfo,
		SubjectID:   actor.ID,
		Description: "user profile read",
		Details:     map[string]any{"resource_id": id},
	})

	return user, nil
}

// ListUsers returns one page of accounts ordered by id, plus pagination
// metadata derived from the total account count.
//
// page values below 1 are normalised to 1; limit values below 1 fall back
// to defaultPageLimit and values above maxPageLimit are capped.
func (s *userService) ListUsers(ctx context.Context, page, limit int64) ([]models.User, models.Pagination, error) {
	log := logger.FromContext(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := (page - 1) * limit

	users, err := s.userRepository.ListUsers(ctx, uint64(limit), uint64(offset))
	if err != nil {
		log.Err(err).Int64("page", page).Int64("limit", limit).Msg("user listing failed")
		return nil, models.Pagination{}, fmt.Errorf("user listing failed: %w", err)
	}

	total, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user count failed")
		return nil, models.Pagination{}, fmt.Errorf("user count failed: %w", err)
	}

	pagination := models.Pagination{
		TotalItems:  total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
		Limit:       limit,
	}

	return users, pagination, nil
}

// UpdateUser applies a partial update to the account with the given id on
// behalf of actor. Only non-nil fields of patch are applied; a password, if
// present, is re-hashed before storage.
//
// Returns the updated account or:
//   - ErrInvalidDataProvided if the patch is empty or a supplied field is
//     blank after trimming.
//   - ErrUserNotFound if no account has the given id.
//   - A wrapped storage error otherwise (e.g. store.ErrEmailAlreadyExists
//     when the new email is taken).
func (s *userService) UpdateUser(ctx context.Context, actor models.User, id int64, patch models.UserUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	update, fields, err := buildUserUpdate(patch, s.bcryptCost)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("invalid update data provided")
		return models.User{}, err
	}

	updatedUser, err := s.userRepository.UpdateUser(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoFieldsToUpdate):
			return models.User{}, ErrInvalidDataProvided
		case errors.Is(err, store.ErrNoUserWasFound):
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Int64("id", id).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	s.auditSink.Record(ctx, audit.Event{
		Category:    audit.CategoryUserAction,
		Severity:    audit.SeverityInfo,
		SubjectID:   actor.ID,
		Description: "user updated",
		Details:     map[string]any{"resource_id": id, "fields": fields},
	})

	return updatedUser, nil
}

// buildUserUpdate converts an API patch into a store-level column update,
// returning the names of the fields being changed for the audit trail.
// The password never reaches the store in plaintext.
func buildUserUpdate(patch models.UserUpdateRequest, bcryptCost int) (store.UserUpdate, []string, error) {
	var update store.UserUpdate
	var fields []string

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" || !strings.Contains(email, "@") {
			return store.UserUpdate{}, nil, ErrInvalidDataProvided
		}
		update.Email = &email
		fields = append(fields, "email")
	}

	if patch.FullName != nil {
		fullName := strings.TrimSpace(*patch.FullName)
		if fullName == "" {
			return store.UserUpdate{}, nil, ErrInvalidDataProvided
		}
		update.FullName = &fullName
		fields = append(fields, "full_name")
	}

	if patch.Active != nil {
		update.Active = patch.Active
		fields = append(fields, "active")
	}

	if patch.Admin != nil {
		update.Admin = patch.Admin
		fields = append(fields, "admin")
	}

	if patch.Password != nil {
		passwordHash, err := utils.HashPassword(*patch.Password, bcryptCost)
		if err != nil {
			return store.UserUpdate{}, nil, ErrInvalidDataProvided
		}
		update.PasswordHash = &passwordHash
		fields = append(fields, "password")
	}

	if len(fields) == 0 {
		return store.UserUpdate{}, nil, ErrInvalidDataProvided
	}

	return update, fields, nil
}
