package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "nil error", err: nil, expectedStatus: http.StatusInternalServerError},
		{name: "bad body", err: fmt.Errorf("%w: EOF", ErrInvalidRequestBody), expectedStatus: http.StatusBadRequest},
		{name: "no employee", err: service.ErrNoEmployeeRecord, expectedStatus: http.StatusBadRequest},
		{name: "bad credentials", err: auth.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
		{name: "invalid token", err: auth.ErrInvalidToken, expectedStatus: http.StatusUnauthorized},
		{name: "unauthorized", err: domain.ErrUnauthorized, expectedStatus: http.StatusUnauthorized},
		{name: "task not found", err: store.ErrTaskNotFound, expectedStatus: http.StatusNotFound},
		{
			name:           "wrapped not found",
			err:            service.NewServiceError("task", "get", store.ErrTaskNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{name: "attendance not found", err: store.ErrAttendanceNotFound, expectedStatus: http.StatusNotFound},
		{name: "attendance exists", err: store.ErrAttendanceExists, expectedStatus: http.StatusConflict},
		{name: "email exists", err: store.ErrEmailExists, expectedStatus: http.StatusConflict},
		{
			name:           "field validation",
			err:            domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyTaskTitle),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "wrapped field validation",
			err:            service.NewServiceError("attendance", "record", domain.NewValidationError("end_time", "x", domain.ErrEndBeforeStart)),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{name: "invalid month", err: domain.ErrInvalidMonth, expectedStatus: http.StatusUnprocessableEntity},
		{name: "non-UTC timestamp", err: domain.ErrNonUTCTimestamp, expectedStatus: http.StatusUnprocessableEntity},
		{name: "invalid entity", err: store.ErrInvalidEntity, expectedStatus: http.StatusUnprocessableEntity},
		{name: "unknown error", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
		{name: "transaction failure", err: store.ErrTransactionFailed, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: "An unexpected error occurred"},
		{name: "bad body", err: ErrInvalidRequestBody, expected: "Invalid request format"},
		{name: "bad credentials", err: auth.ErrInvalidCredentials, expected: "Incorrect email or password"},
		{name: "token", err: auth.ErrMissingToken, expected: "Could not validate credentials"},
		{name: "task", err: store.ErrTaskNotFound, expected: "Task not found"},
		{name: "attendance", err: store.ErrAttendanceNotFound, expected: "Attendance not found"},
		{name: "other not found", err: store.ErrRoleNotFound, expected: "Resource not found"},
		{name: "conflict", err: store.ErrAttendanceExists, expected: "Attendance for this date already exists"},
		{
			name:     "field validation",
			err:      domain.NewValidationError("start_time", "must be in UTC", domain.ErrNonUTCTimestamp),
			expected: "start_time must be in UTC",
		},
		{name: "bare month error", err: domain.ErrInvalidMonth, expected: "Validation error"},
		{
			name:     "internal details hidden",
			err:      fmt.Errorf("query SELECT * FROM users failed: %w", errors.New("connection refused")),
			expected: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

type contactForm struct {
	Email string `json:"email" validate:"required,email"`
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.Validate.Struct(TaskRequest{
		Title:    "root",
		SubTasks: []TaskRequest{{Title: "ok"}, {}},
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid sub_tasks[1].title: required field", SanitizeValidationError(err))

	err = shared.Validate.Struct(contactForm{Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email: invalid email format", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestHandleAPIError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req = req.WithContext(shared.SetTraceID(req.Context()))

	t.Run("fallback replaces generic message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIError(rec, req, errors.New("pq: password=hunter2 rejected"), "Failed to list tasks")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to list tasks")
		assert.NotContains(t, rec.Body.String(), "hunter2")
		assert.Contains(t, rec.Body.String(), shared.GetTraceID(req.Context()))
	})

	t.Run("fallback ignored for known errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIError(rec, req, store.ErrTaskNotFound, "Failed to get task")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task not found")
	})
}
