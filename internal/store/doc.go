// Package store keeps a durable log of searches in SQLite.
//
// The log is append-only. Every entry gets a logical sequence number on
// insert and all reads order by it:
//
//	ORDER BY seq ASC, id ASC COLLATE BINARY
//
// recorded_at is informational only.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// The card corpus itself is never stored here; it lives in memory in a
// carddb.Database.
package store
