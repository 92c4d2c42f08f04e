// Package database opens the application's SQL database and manages its
// schema.
//
// PostgreSQL (through the pgx stdlib driver) is the primary backend. A local
// SQLite file (through the pure-Go modernc.org/sqlite driver) serves as a
// fallback for development, previews and tests. Both dialects run the same
// queries; only the schema migrations differ and are embedded per dialect.
package database
