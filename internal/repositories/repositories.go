package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Store loads and saves the whole catalog.
type Store interface {
	Load() ([]models.Book, error)   // Load returns every stored book in order, or none when the store does not exist yet
	Save(books []models.Book) error // Save overwrites the store with books, keeping their order
	Describe() string               // Describe names the store for messages and logs
	Close() error                   // Close releases any handle held by the store
}

// Open creates the [Store] selected by cfg.Storage.Driver.
func Open(cfg *shared.Config) (Store, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case shared.DriverJSON:
		return NewJSONStore(cfg.Storage.Path), nil
	case shared.DriverSQLite:
		return NewSQLiteStore(cfg.Database.Path, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	default:
		return nil, fmt.Errorf("%w: %w %q", shared.ErrInvalidConfig, shared.ErrUnknownStore, cfg.Storage.Driver)
	}
}

// booksFromRecords converts decoded records, failing on the first malformed one.
func booksFromRecords(records []models.Record) ([]models.Book, error) {
	books := make([]models.Book, 0, len(records))
	for i, r := range records {
		b, err := models.BookFromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		books = append(books, b)
	}
	return books, nil
}
