// Package service contains the application use cases. It coordinates domain
// objects and the repository interfaces from internal/store, and owns the
// transaction boundaries for operations that touch several rows.
//
// Key components:
//
// 1. TaskService:
//   - Creates, reads, replaces and deletes whole task trees
//   - Writes a tree in one transaction, parents before children
//   - Deletes descendants before their ancestors
//
// 2. AttendanceService:
//   - Records at most one attendance per employee per day
//   - Resolves the calling user to an employee record
//   - Lists by month and deletes only the caller's own records
//
// 3. UserService:
//   - Authenticates email and password pairs
//   - Builds the profile returned by the "me" endpoint
//
// Validation failures are returned unwrapped so that callers can match
// domain.ValidationError; other failures are wrapped in ServiceError.
package service
