// Package results persists property and benchmark outcomes to SQLite.
//
// The store is a plain single-writer database (WAL, one connection).
// Concurrent producers go through Sink, a channel-fed recorder that
// drains into the store from a single goroutine, so callers never share
// the write path.
package results
