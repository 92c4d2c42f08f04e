package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// AttendanceHandler handles the attendance endpoints. All of them require an
// authenticated user with an employee record.
type AttendanceHandler struct {
	attendances service.AttendanceService
	logger      *slog.Logger
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendances service.AttendanceService, logger *slog.Logger) *AttendanceHandler {
	if attendances == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("attendance service cannot be nil for AttendanceHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceHandler{
		attendances: attendances,
		logger:      logger.With(slog.String("component", "attendance_handler")),
	}
}

// CreateAttendance handles POST /attendances. A new record is answered with
// 201; replacing the record of the same day is answered with 200.
func (h *AttendanceHandler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AttendanceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	att, created, err := h.attendances.RecordAttendance(r.Context(), userID, req.ToInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record attendance")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	log.Debug("attendance recorded",
		slog.String("attendance_id", att.ID.String()),
		slog.Bool("created", created))
	shared.RespondWithJSON(w, r, status, attendanceToResponse(att))
}

// ListAttendances handles GET /attendances with an optional month=YYYY-MM
// query parameter.
func (h *AttendanceHandler) ListAttendances(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	records, err := h.attendances.ListAttendances(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list attendances")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, attendancesToResponse(records))
}

// DeleteAttendance handles DELETE /attendances/{id}. Records of other
// employees are answered with 404.
func (h *AttendanceHandler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id", store.ErrAttendanceNotFound)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.attendances.DeleteAttendance(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete attendance")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
