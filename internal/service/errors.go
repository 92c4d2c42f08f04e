package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); the API layer maps them to status codes.
var (
	// ErrNoEmployeeRecord indicates the authenticated user has no employee
	// record, so attendance cannot be tracked for them.
	// API layer should map this to HTTP 400 Bad Request.
	ErrNoEmployeeRecord = errors.New("user has no employee record")
)

// ServiceError wraps an unexpected failure with the service and operation in
// which it happened. Expected conditions are returned as sentinels instead.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the underlying error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err, returning nil when err is nil.
func NewServiceError(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Op: op, Err: err}
}
