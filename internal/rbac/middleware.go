package rbac

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/sentinel/internal/platform/httpx"
	"github.com/noah-isme/sentinel/internal/shared"
)

// TokenValidator checks a bearer token's signature and expiry and returns
// the identity claims it carries.
type TokenValidator interface {
	Validate(token string) (userID uuid.UUID, role string, err error)
}

// IdentityLoader resolves a user ID to the stored account.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, id uuid.UUID) (shared.Identity, error)
}

// Middleware wires the authentication and role gates for HTTP handlers.
// The authentication gate always runs first; role gates are only mounted
// inside authenticated groups, so the first failing gate decides the
// response and later gates never run.
type Middleware struct {
	Tokens TokenValidator
	Users  IdentityLoader
	Logger *slog.Logger
}

// Authenticate requires a valid bearer token referencing an existing user.
// The role placed in context is the token's claim, a snapshot taken at
// issuance; a role change after login only takes effect on reissue.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized, token missing")
			return
		}
		userID, role, err := m.Tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if m.Logger != nil {
				m.Logger.Debug("token rejected", slog.Any("error", err))
			}
			httpx.Error(w, http.StatusUnauthorized, "unauthorized, token invalid")
			return
		}
		ident, err := m.Users.LoadIdentity(r.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				httpx.Error(w, http.StatusUnauthorized, "unauthorized, user not found")
				return
			}
			if m.Logger != nil {
				m.Logger.Error("load identity", slog.Any("error", err))
			}
			httpx.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
		ident.Role = role
		ctx := shared.ContextWithIdentity(r.Context(), ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows the request only when the authenticated caller's role
// is in the allow-list. Role names compare as opaque strings.
func (m Middleware) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := shared.IdentityFromContext(r.Context())
			if !ok {
				httpx.RespondError(w, m.Logger, fmt.Errorf("rbac: no identity: %w", shared.ErrUnauthorized))
				return
			}
			for _, role := range roles {
				if ident.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.RespondError(w, m.Logger, fmt.Errorf("rbac: insufficient role: %w", shared.ErrForbidden))
		})
	}
}
