// Package repositories persists the catalog as a whole.
//
// Every backend implements [Store]: Load returns the full ordered collection and Save replaces it.
// There is no per-record access; the catalog rewrites the entire dataset after each mutation.
//
// Implementations:
//   - [JSONStore] : pretty-printed JSON array in a single file, replaced via temp file and rename
//   - [SQLiteStore] : books table in a SQLite database, replaced inside one transaction
//
// [Open] picks the backend from [shared.Config].
package repositories
