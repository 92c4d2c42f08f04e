package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token issued on login.
type LoginResponse struct {
	Token string `json:"token"`
}

// ProfileResponse describes the authenticated user.
type ProfileResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// MessageResponse is a body with a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// TaskRequest is the body of task create and update requests. Nested
// sub_tasks describe the complete set of children.
type TaskRequest struct {
	Title       string        `json:"title"     validate:"required"`
	Description *string       `json:"description"`
	DueDate     *string       `json:"due_date"`
	Priority    *int          `json:"priority"`
	Completed   bool          `json:"completed"`
	SubTasks    []TaskRequest `json:"sub_tasks" validate:"dive"`
}

// ToSpec converts the request into a domain.TaskSpec. An omitted priority
// becomes domain.DefaultTaskPriority. due_date may be an ISO 8601 timestamp
// with or without offset, or a bare date; it is stored in UTC.
func (r TaskRequest) ToSpec() (domain.TaskSpec, error) {
	return r.toSpec("")
}

func (r TaskRequest) toSpec(prefix string) (domain.TaskSpec, error) {
	priority := domain.DefaultTaskPriority
	if r.Priority != nil {
		priority = *r.Priority
	}

	spec := domain.TaskSpec{
		Title:       r.Title,
		Description: r.Description,
		Priority:    priority,
		Completed:   r.Completed,
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := domain.ParseTimestamp(*r.DueDate)
		if err != nil {
			return domain.TaskSpec{}, domain.NewValidationError(
				prefix+"due_date", "must be an ISO 8601 timestamp", err)
		}
		spec.DueDate = &due
	}
	if len(r.SubTasks) > 0 {
		spec.SubTasks = make([]domain.TaskSpec, len(r.SubTasks))
		for i, child := range r.SubTasks {
			childSpec, err := child.toSpec(fmt.Sprintf("%ssub_tasks[%d].", prefix, i))
			if err != nil {
				return domain.TaskSpec{}, err
			}
			spec.SubTasks[i] = childSpec
		}
	}
	return spec, nil
}

// TaskResponse is a task with its nested children.
type TaskResponse struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	DueDate     *time.Time     `json:"due_date"`
	Priority    int            `json:"priority"`
	Completed   bool           `json:"completed"`
	SubTasks    []TaskResponse `json:"sub_tasks"`
}

// taskToResponse converts a task tree. sub_tasks is always an array.
func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		Completed:   task.Completed,
		SubTasks:    make([]TaskResponse, 0, len(task.SubTasks)),
	}
	for _, child := range task.SubTasks {
		resp.SubTasks = append(resp.SubTasks, taskToResponse(child))
	}
	return resp
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

// AttendanceRequest is the body of the attendance create request. Date is
// optional and defaults to the date of start_time.
type AttendanceRequest struct {
	Date                 string  `json:"date"`
	StartTime            string  `json:"start_time"             validate:"required"`
	EndTime              string  `json:"end_time"               validate:"required"`
	BreakDurationMinutes *int    `json:"break_duration_minutes" validate:"omitempty,min=0"`
	Notes                *string `json:"notes_free_text"`
}

// ToInput converts the request into a service.AttendanceInput.
func (r AttendanceRequest) ToInput() service.AttendanceInput {
	input := service.AttendanceInput{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Notes:     r.Notes,
	}
	if r.BreakDurationMinutes != nil {
		input.BreakDurationMinutes = *r.BreakDurationMinutes
	}
	return input
}

// AttendanceResponse is an attendance record. Date is formatted YYYY-MM-DD.
type AttendanceResponse struct {
	ID                   uuid.UUID `json:"id"`
	EmployeeID           uuid.UUID `json:"employee_id"`
	Date                 string    `json:"date"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	BreakDurationMinutes int       `json:"break_duration_minutes"`
	NotesFreeText        *string   `json:"notes_free_text"`
}

func attendanceToResponse(a *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                   a.ID,
		EmployeeID:           a.EmployeeID,
		Date:                 domain.FormatDate(a.Date),
		StartTime:            a.StartTime.UTC(),
		EndTime:              a.EndTime.UTC(),
		BreakDurationMinutes: a.BreakDurationMinutes,
		NotesFreeText:        a.Notes,
	}
}

func attendancesToResponse(records []*domain.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, attendanceToResponse(a))
	}
	return out
}
