package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkarev/go-user-service/internal/audit"
	"github.com/mkarev/go-user-service/internal/config"
	"github.com/mkarev/go-user-service/internal/logger"
	"github.com/mkarev/go-user-service/internal/store"
	"github.com/mkarev/go-user-service/internal/utils"
	"github.com/mkarev/go-user-service/models"
)

// Rejection reasons attached to audit events emitted by the bearer-token
// resolution path and the login flow. They are never exposed to clients:
// every rejection collapses to ErrUnauthenticated or ErrInvalidCredentials
// externally, and the reason survives only in the audit trail.
const (
	reasonNoToken        = "NO_TOKEN"
	reasonMalformed      = "MALFORMED"
	reasonBadSignature   = "BAD_SIGNATURE"
	reasonExpired        = "EXPIRED"
	reasonMissingSubject = "MISSING_SUBJECT"
	reasonUnknownSubject = "UNKNOWN_SUBJECT"
	reasonInactive       = "INACTIVE"
	reasonUnknownEmail   = "UNKNOWN_EMAIL"
	reasonBadPassword    = "BAD_PASSWORD"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, JWT token lifecycle,
// and per-request identity resolution using a UserRepository for
// persistence, bcrypt for password hashing, and an audit sink for
// security-event reporting.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// auditSink receives security and authentication events. Recording is
	// fire-and-forget: a sink failure never changes the request outcome.
	auditSink audit.Sink

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the bcrypt work factor applied when hashing passwords.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and audit sink, populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, auditSink audit.Sink, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		auditSink:      auditSink,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// RegisterUser creates a new account.
//
// It trims and validates the payload, hashes the password with bcrypt, and
// delegates persistence to the UserRepository. New accounts are active and
// non-admin.
//
// Returns the persisted user (with server-assigned ID and CreatedAt) or:
//   - ErrInvalidDataProvided if email, full name, or password is blank, or
//     the email is not plausibly an address.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := strings.TrimSpace(req.Email)
	fullName := strings.TrimSpace(req.FullName)

	if email == "" || !strings.Contains(email, "@") || fullName == "" || req.Password == "" {
		log.Error().Str("email", email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Active:       true,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			a.auditSink.Record(ctx, audit.Event{
				Category:    audit.CategorySecurity,
				Severity:    audit.SeverityLow,
				Description: "registration attempt with an already registered email",
				Details:     map[string]any{"email": email},
			})
		}
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.auditSink.Record(ctx, audit.Event{
		Category:    audit.CategoryUserAction,
		Severity:    audit.SeverityInfo,
		SubjectID:   registeredUser.ID,
		Description: "user registered",
		Details:     map[string]any{"email": registeredUser.Email},
	})

	return registeredUser, nil
}

// Login authenticates an existing account and issues a signed JWT.
//
// The account is looked up by email and the supplied password is checked
// against the stored bcrypt hash. Unknown email and wrong password both
// yield ErrInvalidCredentials so that responses cannot be used to probe
// which emails are registered. An inactive account with correct credentials
// yields the distinct ErrAccountInactive.
//
// On success last_login is updated (best effort — a failed update is logged
// but does not fail the login) and a success event is audited.
//
// Returns the issued token or:
//   - ErrInvalidCredentials for blank input, unknown email, or wrong password.
//   - ErrAccountInactive if the credentials are correct but the account is
//     deactivated.
//   - ErrTokenCreationFailed (wrapped) if JWT generation fails.
//   - A wrapped storage error if the lookup fails for infrastructure reasons.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return models.Token{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.auditSink.Record(ctx, audit.Event{
				Category:    audit.CategoryAuthentication,
				Severity:    audit.SeverityLow,
				Description: "login failed",
				Details:     map[string]any{"reason": reasonUnknownEmail, "email": email},
			})
			return models.Token{}, ErrInvalidCredentials
		}

		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		a.auditSink.Record(ctx, audit.Event{
			Category:    audit.CategoryAuthentication,
			Severity:    audit.SeverityLow,
			SubjectID:   user.ID,
			Description: "login failed",
			Details:     map[string]any{"reason": reasonBadPassword},
		})
		return models.Token{}, ErrInvalidCredentials
	}

	if !user.Active {
		a.auditSink.Record(ctx, audit.Event{
			Category:    audit.CategorySecurity,
			Severity:    audit.SeverityMedium,
			SubjectID:   user.ID,
			Description: "login attempt on an inactive account",
			Details:     map[string]any{"reason": reasonInactive},
		})
		return models.Token{}, ErrAccountInactive
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("token generation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err := a.userRepository.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		// Best effort: the user holds a valid token either way.
		log.Err(err).Int64("id", user.ID).Msg("last login update failed")
	}

	a.auditSink.Record(ctx, audit.Event{
		Category:    audit.CategoryAuthentication,
		Severity:    audit.SeverityInfo,
		SubjectID:   user.ID,
		Description: "login succeeded",
	})

	return token, nil
}

// Authenticate resolves a raw bearer token into a verified, active account.
//
// Resolution proceeds through terminal checks only — there is no retry and
// no partial success:
//  1. an empty token is rejected outright;
//  2. the token is verified (signature, issuer, expiry, subject presence);
//  3. the subject email must resolve to an existing account;
//  4. the account must be active.
//
// Every rejection is audited with its underlying reason, but callers always
// receive the same ErrUnauthenticated so the response cannot reveal which
// check failed. A validly signed token whose subject no longer exists is
// audited at high severity: it implies a stale token outliving its account.
//
// Returns the resolved account or:
//   - ErrUnauthenticated on any token or account check failure.
//   - A wrapped storage error if the account lookup fails for
//     infrastructure reasons.
func (a *authService) Authenticate(ctx context.Context, rawToken string) (models.User, error) {
	log := logger.FromContext(ctx)

	if rawToken == "" {
		a.auditSink.Record(ctx, audit.Event{
			Category:    audit.CategoryAuthentication,
			Severity:    audit.SeverityLow,
			Description: "request rejected without a bearer token",
			Details:     map[string]any{"reason": reasonNoToken},
		})
		return models.User{}, ErrUnauthenticated
	}

	token, err := utils.ValidateAndParseJWTToken(rawToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		reason, severity := classifyTokenError(err)
		a.auditSink.Record(ctx, audit.Event{
			Category:    audit.CategorySecurity,
			Severity:    severity,
			Description: "bearer token rejected",
			Details:     map[string]any{"reason": reason},
		})
		return models.User{}, ErrUnauthenticated
	}

	user, err := a.userRepository.FindUserByEmail(ctx, token.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.auditSink.Record(ctx, audit.Event{
				Category:    audit.CategorySecurity,
				Severity:    audit.SeverityHigh,
				Description: "validly signed token presented for a nonexistent account",
				Details:     map[string]any{"reason": reasonUnknownSubject, "email": token.Subject},
			})
			return models.User{}, ErrUnauthenticated
		}

		log.Err(err).Str("email", token.Subject).Msg("user search by token subject failed")
		return models.User{}, fmt.Errorf("user search by token subject failed: %w", err)
	}

	if !user.Active {
		a.auditSink.Record(ctx, audit.Event{
			Category:    audit.CategorySecurity,
			Severity:    audit.SeverityMedium,
			SubjectID:   user.ID,
			Description: "token presented for an inactive account",
			Details:     map[string]any{"reason": reasonInactive},
		})
		return models.User{}, ErrUnauthenticated
	}

	a.auditSink.Record(ctx, audit.Event{
		Category:    audit.CategoryDataAccess,
		Severity:    audit.SeverityInfo,
		SubjectID:   user.ID,
		Description: "request authenticated",
	})

	return user, nil
}

// RequireAdmin checks that the already-authenticated actor holds the admin
// flag. It is a pure predicate composed after Authenticate and does not
// re-verify the token.
//
// Returns nil for an admin actor, or ErrForbidden otherwise. Rejections are
// audited at high severity with the actor's id and email.
func (a *authService) RequireAdmin(ctx context.Context, actor models.User) error {
	if actor.Admin {
		return nil
	}

	a.auditSink.Record(ctx, audit.Event{
		Category:    audit.CategorySecurity,
		Severity:    audit.SeverityHigh,
		SubjectID:   actor.ID,
		Description: "admin operation attempted without admin privileges",
		Details:     map[string]any{"email": actor.Email},
	})

	return ErrForbidden
}

// classifyTokenError maps a token verification failure onto the audit
// rejection reason and severity. Expiry and malformed input are ordinary
// client mistakes; an invalid signature or a missing subject means the token
// was never issued by this service.
func classifyTokenError(err error) (string, audit.Severity) {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return reasonExpired, audit.SeverityLow
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return reasonBadSignature, audit.SeverityMedium
	case errors.Is(err, utils.ErrEmptySubject):
		return reasonMissingSubject, audit.SeverityMedium
	default:
		return reasonMalformed, audit.SeverityLow
	}
}
