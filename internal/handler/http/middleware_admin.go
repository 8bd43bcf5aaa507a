package http

import (
	"net/http"

	"github.com/mkarev/go-user-service/internal/logger"
	"github.com/mkarev/go-user-service/internal/service"
	"github.com/mkarev/go-user-service/internal/utils"
)

// requireAdmin is an HTTP middleware that gates a route group on the admin
// flag of the account resolved by the auth middleware. It is composed after
// [Handler.auth] and does not re-verify the token.
//
// Requests from non-admin accounts are rejected with HTTP 403 Forbidden;
// the rejection itself is audited inside [service.AuthService.RequireAdmin].
// A request that reaches this middleware without an account in its context
// indicates a broken middleware chain and is rejected with 401.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		actor, ok := utils.GetUserFromContext(ctx)
		if !ok {
			log.Error().Msg("no authenticated user in request context")
			writeError(w, service.ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}

		if err := h.services.AuthService.RequireAdmin(ctx, actor); err != nil {
			log.Err(err).Int64("id", actor.ID).Msg("admin access denied")
			writeError(w, service.ErrForbidden.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
