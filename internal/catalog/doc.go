// Package catalog implements the record management core of shelf.
//
// A [Library] owns the ordered collection of books, assigns ids and writes the whole collection
// back to its [repositories.Store] after every successful mutation (Add, Remove, ChangeStatus).
// Reads (Search, List, Get) never touch the store.
//
// Conditions a caller is expected to report and recover from are returned as sentinel errors:
// [shared.ErrBookNotFound], [shared.ErrInvalidStatus] and [shared.ErrInvalidInput]. Failures to
// persist wrap [shared.ErrStorage]; after one the in-memory collection is rolled back to match the
// last successful save.
//
// A Library is not safe for concurrent use.
package catalog
