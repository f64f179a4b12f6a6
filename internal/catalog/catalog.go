package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/shared"
)

// Library is the in-memory catalog backed by a [repositories.Store].
type Library struct {
	books  []models.Book
	nextID int
	store  repositories.Store
	logger *log.Logger
}

// New loads every book from store and returns a ready [Library].
//
// Any load failure, including a malformed record or a repeated id, is returned as is.
func New(store repositories.Store, logger *log.Logger) (*Library, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	l := &Library{
		store:  store,
		logger: shared.WithLogger(logger, "store", store.Describe()),
	}

	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Library) load() error {
	books, err := l.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog from %s: %w", l.store.Describe(), err)
	}

	if books == nil {
		books = []models.Book{}
	}

	seen := make(map[int]struct{}, len(books))
	maxID := 0
	for _, b := range books {
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("failed to load catalog from %s: %w: %w %d", l.store.Describe(), shared.ErrMalformedRecord, shared.ErrDuplicateID, b.ID)
		}
		seen[b.ID] = struct{}{}
		maxID = max(maxID, b.ID)
	}

	l.books = books
	l.nextID = maxID + 1
	l.logger.Debug("catalog loaded", "books", len(books), "next_id", l.nextID)
	return nil
}

// Save writes the whole collection to the store in its current order.
func (l *Library) Save() error {
	if err := l.store.Save(l.books); err != nil {
		return fmt.Errorf("%w: failed to save catalog to %s: %w", shared.ErrStorage, l.store.Describe(), err)
	}
	return nil
}

// Add creates an available book with the next id, appends it and saves.
func (l *Library) Add(title, author string, year int) (models.Book, error) {
	book := models.NewBook(l.nextID, title, author, year)
	if err := book.Validate(); err != nil {
		return models.Book{}, err
	}

	l.books = append(l.books, book)
	if err := l.Save(); err != nil {
		l.books = l.books[:len(l.books)-1]
		return models.Book{}, err
	}
	l.nextID++

	l.logger.Info("book added", "id", book.ID, "title", book.Title)
	return book, nil
}

// Remove deletes the first book with id and saves. It returns the removed book.
func (l *Library) Remove(id int) (models.Book, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return models.Book{}, fmt.Errorf("%w: id %d", shared.ErrBookNotFound, id)
	}

	previous := l.books
	removed := l.books[idx]
	l.books = slices.Delete(slices.Clone(l.books), idx, idx+1)

	if err := l.Save(); err != nil {
		l.books = previous
		return models.Book{}, err
	}

	l.logger.Info("book removed", "id", id)
	return removed, nil
}

// ChangeStatus sets the status of the book with id and saves.
//
// status must be exactly one of [models.Statuses]. It is validated before the lookup, so an invalid
// status on an unknown id reports [shared.ErrInvalidStatus].
func (l *Library) ChangeStatus(id int, status string) (models.Book, error) {
	newStatus := models.Status(status)
	if !newStatus.Valid() {
		return models.Book{}, fmt.Errorf("%w: %q (use %s or %s)", shared.ErrInvalidStatus, status, models.StatusAvailable, models.StatusCheckedOut)
	}

	idx := l.indexOf(id)
	if idx < 0 {
		return models.Book{}, fmt.Errorf("%w: id %d", shared.ErrBookNotFound, id)
	}

	old := l.books[idx].Status
	l.books[idx].Status = newStatus
	if err := l.Save(); err != nil {
		l.books[idx].Status = old
		return models.Book{}, err
	}

	l.logger.Info("status changed", "id", id, "from", old, "to", newStatus)
	return l.books[idx], nil
}

// Search returns, in collection order, the books whose title or author contains query ignoring
// case, or whose year written in decimal contains query.
func (l *Library) Search(query string) []models.Book {
	needle := strings.ToLower(query)

	results := []models.Book{}
	for _, b := range l.books {
		if strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) ||
			strings.Contains(strconv.Itoa(b.Year), query) {
			results = append(results, b)
		}
	}

	l.logger.Debug("search", "query", query, "matches", len(results))
	return results
}

// List returns a copy of every book in collection order.
func (l *Library) List() []models.Book {
	return slices.Clone(l.books)
}

// Get returns the book with id.
func (l *Library) Get(id int) (models.Book, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return models.Book{}, fmt.Errorf("%w: id %d", shared.ErrBookNotFound, id)
	}
	return l.books[idx], nil
}

// Len returns the number of books.
func (l *Library) Len() int { return len(l.books) }

// Describe names the backing store.
func (l *Library) Describe() string { return l.store.Describe() }

func (l *Library) indexOf(id int) int {
	return slices.IndexFunc(l.books, func(b models.Book) bool { return b.ID == id })
}
