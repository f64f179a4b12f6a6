// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"slices"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
)

// ErrSaveFailed is returned by [MemoryStore.Save] when FailSave is set.
var ErrSaveFailed = errors.New("save failed")

// MemoryStore is an in-memory test double for [repositories.Store].
type MemoryStore struct {
	Books     []models.Book
	LoadErr   error
	FailSave  bool
	SaveCalls int
}

func (m *MemoryStore) Load() ([]models.Book, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return slices.Clone(m.Books), nil
}

func (m *MemoryStore) Save(books []models.Book) error {
	m.SaveCalls++
	if m.FailSave {
		return ErrSaveFailed
	}
	m.Books = slices.Clone(books)
	return nil
}

func (m *MemoryStore) Describe() string { return "memory" }
func (m *MemoryStore) Close() error     { return nil }

// IDs returns the ids of the stored books in order.
func (m *MemoryStore) IDs() []int {
	ids := make([]int, len(m.Books))
	for i, b := range m.Books {
		ids[i] = b.ID
	}
	return ids
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// SampleBooks returns three available books with ids 1 to 3.
func SampleBooks() []models.Book {
	return []models.Book{
		models.NewBook(1, "Dune", "Frank Herbert", 1965),
		models.NewBook(2, "The Left Hand of Darkness", "Ursula K. Le Guin", 1969),
		models.NewBook(3, "Солярис", "Станислав Лем", 1961),
	}
}
