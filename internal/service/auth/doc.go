// Package auth provides password hashing and the bearer tokens that
// authenticate API requests.
package auth
