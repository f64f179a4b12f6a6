// Package models defines the catalog entry type for shelf.
//
//   - [Book] : one catalog entry with id, title, author, publication year and [Status]
//   - [Status] : closed availability enum, [StatusAvailable] or [StatusCheckedOut]
//   - [Record] : the plain structured form a [Book] is persisted as
//
// Books carry no behavior beyond validation and conversion; ids are assigned and statuses
// changed by the catalog that owns them.
package models
