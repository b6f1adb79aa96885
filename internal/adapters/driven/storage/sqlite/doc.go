// Package sqlite provides an SQLite-based implementation of driven.EntryStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// Entries live in a single records table whose layout matches databases
// written by earlier versions of the tool, so existing files open unchanged.
// Uniqueness of (work_date, line_item) is enforced by the store, not by the
// schema. The schema is managed through versioned migrations stored in the
// migrations/ directory; every statement is idempotent.
//
// # Data Location
//
// By default, the database is stored at ~/Documents/time_cards.db
//
// # Consistency
//
// Each operation runs on its own pooled connection. Delete and its
// renumbering run in one transaction, and reads order rows by line item then
// rowid, so a day always reads as 0..n-1 even if stored line items have gaps.
// Concurrent writers from several processes are not coordinated beyond
// SQLite's own locking.
package sqlite
