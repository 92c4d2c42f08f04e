// Package postgres provides the SQL implementations of the data storage
// interfaces defined in the internal/store package.
//
// The queries target PostgreSQL and stay within the subset of SQL that
// SQLite understands as well ($N placeholders, WITH RECURSIVE), so the same
// stores run against the local SQLite fallback. Driver errors of both
// backends are translated to store errors by MapError.
package postgres
