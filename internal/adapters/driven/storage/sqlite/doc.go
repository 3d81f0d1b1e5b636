// Package sqlite records refresh and pagination run history in SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, so the daemon cross-compiles for ARM single-board
// computers. It implements:
//
//   - HistoryStore: One row per refresh cycle or pagination tick
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are tracked in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.inkpanel/data/history.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite's own locking
// in WAL mode.
package sqlite
