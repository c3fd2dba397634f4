// Package sqlite provides a local SQLite-backed implementation of the
// vector store and chat history ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Both stores share one database connection:
//
//   - VectorStore: chunk text, metadata and embeddings, searched by brute-force cosine similarity
//   - HistoryStore: chat exchanges per session, for resuming a chat
//
// # Schema
//
// The schema is managed through numbered migrations embedded from the
// migrations/ directory; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.docchat/data/docchat.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
