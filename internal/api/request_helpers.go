package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context, where the auth middleware put it.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}

// getPathUUID parses the named path parameter as a UUID. Missing or
// malformed identifiers cannot name an existing entity, so the error wraps
// notFound.
func getPathUUID(r *http.Request, paramName string, notFound error) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed %s %q: %w", paramName, raw, notFound)
	}
	return id, nil
}

// decodeAndValidate decodes the JSON body into req and validates it. Decode
// failures wrap ErrInvalidRequestBody; validation failures are returned as
// is.
func decodeAndValidate(r *http.Request, req interface{}) error {
	if err := shared.DecodeJSON(r, req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequestBody, err)
	}
	return shared.ValidateRequest(req)
}

// requireUserID writes a 401 response and returns false when the request is
// not authenticated.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, false
	}
	return userID, true
}
