package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrEmptyRoleName       = errors.New("role name cannot be empty")
	ErrEmptyDepartmentName = errors.New("department name cannot be empty")
	ErrEmptyEmployeeCode   = errors.New("employee code cannot be empty")
	ErrEmptyEmployeeName   = errors.New("employee name cannot be empty")
)

// User is an account that can log in. Its role decides what it is; an
// employee record linked to the user allows it to track attendance.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"` // Never expose password hash in JSON
	RoleID         *uuid.UUID `json:"role_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates a new User with the given email and an already hashed
// password. Returns an error if validation fails.
func NewUser(email, hashedPassword string, roleID *uuid.UUID) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Email:          strings.TrimSpace(email),
		HashedPassword: hashedPassword,
		RoleID:         roleID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// validateEmailFormat performs basic validation of email format: a non-empty
// local part, an @, and a domain containing a dot that is neither leading
// nor trailing.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domainPart := email[at+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}

// Role names a group of users, e.g. "employee" or "admin".
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewRole creates a new Role with the given name.
func NewRole(name string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoleName
	}
	return &Role{ID: uuid.New(), Name: name}, nil
}

// Department groups employees.
type Department struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewDepartment creates a new Department with the given name.
func NewDepartment(name string) (*Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyDepartmentName
	}
	return &Department{ID: uuid.New(), Name: name}, nil
}

// Employee links a user one-to-one to the staff register. Attendance records
// belong to employees, not to users.
type Employee struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	EmployeeCode string     `json:"employee_code"`
	Name         string     `json:"name"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewEmployee creates a new Employee for the given user.
func NewEmployee(userID uuid.UUID, code, name string, departmentID *uuid.UUID) (*Employee, error) {
	e := &Employee{
		ID:           uuid.New(),
		UserID:       userID,
		EmployeeCode: strings.TrimSpace(code),
		Name:         strings.TrimSpace(name),
		DepartmentID: departmentID,
		CreatedAt:    time.Now().UTC(),
	}

	if e.UserID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	if e.EmployeeCode == "" {
		return nil, ErrEmptyEmployeeCode
	}
	if e.Name == "" {
		return nil, ErrEmptyEmployeeName
	}

	return e, nil
}
