// Package api contains the HTTP handlers of the service. Handlers decode and
// validate JSON requests, call the services in internal/service and map
// their errors to status codes with HandleAPIError, so that internal error
// text never reaches a client.
package api
