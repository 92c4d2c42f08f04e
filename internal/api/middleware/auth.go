// Package middleware contains the HTTP middleware of the API: bearer-token
// authentication and request tracing.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// AuthMiddleware authenticates requests with bearer tokens issued by a
// TokenStore.
type AuthMiddleware struct {
	tokens auth.TokenStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenStore) *AuthMiddleware {
	if tokens == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("token store cannot be nil for AuthMiddleware")
	}
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate resolves the "Authorization: Bearer <token>" header and adds
// the user ID to the request context. Requests without a valid token get 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug("rejected request without usable credentials", slog.String("reason", err.Error()))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		userID, ok := m.tokens.Resolve(r.Context(), token)
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Could not validate credentials", auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), userID)))
	})
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}
