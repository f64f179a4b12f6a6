package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
)

// Book is one catalog entry.
//
// Field order matches the persisted key order.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Status Status `json:"status"`
}

// NewBook creates an available [Book].
func NewBook(id int, title, author string, year int) Book {
	return Book{ID: id, Title: title, Author: author, Year: year, Status: StatusAvailable}
}

// Validate checks the id, the title and author and the status.
func (b Book) Validate() error {
	if b.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", shared.ErrInvalidInput, b.ID)
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(b.Author) == "" {
		return fmt.Errorf("%w: author is required", shared.ErrInvalidInput)
	}
	if !b.Status.Valid() {
		return fmt.Errorf("%w: %w: %q", shared.ErrInvalidInput, shared.ErrInvalidStatus, string(b.Status))
	}
	return nil
}

// String renders the display line "<id>: <title> author: <author> (<year>) - <status>".
func (b Book) String() string {
	return fmt.Sprintf("%d: %s author: %s (%d) - %s", b.ID, b.Title, b.Author, b.Year, b.Status)
}

// Record converts b into its structured form.
func (b Book) Record() Record {
	return Record{
		KeyID:     b.ID,
		KeyTitle:  b.Title,
		KeyAuthor: b.Author,
		KeyYear:   b.Year,
		KeyStatus: string(b.Status),
	}
}

// BookFromRecord builds a [Book] from its structured form.
//
// Every key is required. Errors wrap [shared.ErrMalformedRecord] and name the offending key.
func BookFromRecord(r Record) (Book, error) {
	var b Book
	var err error

	if b.ID, err = intField(r, KeyID); err != nil {
		return Book{}, err
	}
	if b.ID <= 0 {
		return Book{}, fmt.Errorf("%w: %q must be positive, got %d", shared.ErrMalformedRecord, KeyID, b.ID)
	}
	if b.Title, err = stringField(r, KeyTitle); err != nil {
		return Book{}, err
	}
	if b.Author, err = stringField(r, KeyAuthor); err != nil {
		return Book{}, err
	}
	if b.Year, err = intField(r, KeyYear); err != nil {
		return Book{}, err
	}

	status, err := stringField(r, KeyStatus)
	if err != nil {
		return Book{}, err
	}
	if err := b.Status.UnmarshalText([]byte(status)); err != nil {
		return Book{}, fmt.Errorf("%w: book %d: %w", shared.ErrMalformedRecord, b.ID, err)
	}

	return b, nil
}

func stringField(r Record, key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", fmt.Errorf("%w: missing key %q", shared.ErrMalformedRecord, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q must be text, got %T", shared.ErrMalformedRecord, key, v)
	}
	return s, nil
}

func intField(r Record, key string) (int, error) {
	v, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing key %q", shared.ErrMalformedRecord, key)
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || n < math.MinInt || n >= -math.MinInt {
			return 0, fmt.Errorf("%w: key %q must be an integer, got %v", shared.ErrMalformedRecord, key, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil || int64(int(i)) != i {
			return 0, fmt.Errorf("%w: key %q must be an integer, got %s", shared.ErrMalformedRecord, key, n)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%w: key %q must be an integer, got %T", shared.ErrMalformedRecord, key, v)
	}
}
