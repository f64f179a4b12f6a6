package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// SQLiteStore keeps the catalog in the books table, ordered by position.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens the database at path and brings its schema up to date.
func NewSQLiteStore(path string, maxOpenConns, maxIdleConns int) (*SQLiteStore, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, maxOpenConns, maxIdleConns)

	store, err := NewSQLiteStoreFromDB(db, path)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStoreFromDB wraps an open database, running migrations first.
func NewSQLiteStoreFromDB(db *sql.DB, path string) (*SQLiteStore, error) {
	if err := shared.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Describe() string { return "sqlite:" + s.path }

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load reads every book in position order.
func (s *SQLiteStore) Load() ([]models.Book, error) {
	rows, err := s.db.Query(`
		SELECT id, title, author, year, status
		FROM books
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var b models.Book
		var status string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &status); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		if err := b.Status.UnmarshalText([]byte(status)); err != nil {
			return nil, fmt.Errorf("%w: book %d: %w", shared.ErrMalformedRecord, b.ID, err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

// Save replaces the table contents with books in a single transaction.
func (s *SQLiteStore) Save(books []models.Book) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM books"); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO books (id, position, title, author, year, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range books {
		if _, err := stmt.Exec(b.ID, i, b.Title, b.Author, b.Year, string(b.Status)); err != nil {
			return fmt.Errorf("failed to insert book %d: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}
