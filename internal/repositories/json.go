package repositories

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	jsoniter "github.com/json-iterator/go"
)

// storeJSON keeps numbers as json.Number on decode so ids and years are range checked instead of
// being rounded through float64, and leaves non-ASCII and HTML characters unescaped.
var storeJSON = jsoniter.Config{
	IndentionStep: 4,
	EscapeHTML:    false,
	UseNumber:     true,
}.Froze()

// JSONStore keeps the catalog as a pretty-printed JSON array of records in a single file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a [JSONStore] for the file at path. The file is not touched until Load or Save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Describe() string { return s.path }

func (s *JSONStore) Close() error { return nil }

// Load reads and decodes the file. A missing or blank file is an empty catalog.
func (s *JSONStore) Load() ([]models.Book, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Book{}, nil
	}

	var records []models.Record
	if err := storeJSON.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", shared.ErrMalformedRecord, s.path, err)
	}

	books, err := booksFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return books, nil
}

// Save encodes books as records, keys in [models.RecordKeys] order, and replaces the file
// through a temp file in the same directory.
func (s *JSONStore) Save(books []models.Book) error {
	data, err := encodeRecords(books)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(s.path, data, 0644)
}

func encodeRecords(books []models.Book) ([]byte, error) {
	stream := storeJSON.BorrowStream(nil)
	defer storeJSON.ReturnStream(stream)

	if len(books) == 0 {
		stream.WriteEmptyArray()
	} else {
		stream.WriteArrayStart()
		for i, b := range books {
			if i > 0 {
				stream.WriteMore()
			}
			if !b.Status.Valid() {
				return nil, fmt.Errorf("%w: book %d: %q", shared.ErrInvalidStatus, b.ID, string(b.Status))
			}
			record := b.Record()
			stream.WriteObjectStart()
			for j, key := range models.RecordKeys {
				if j > 0 {
					stream.WriteMore()
				}
				stream.WriteObjectField(key)
				stream.WriteVal(record[key])
			}
			stream.WriteObjectEnd()
		}
		stream.WriteArrayEnd()
	}

	if stream.Error != nil {
		return nil, stream.Error
	}
	return slices.Clone(stream.Buffer()), nil
}

// writeFileAtomic writes data to a sibling temp file and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("failed to write %s: %w", tmpName, err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("failed to sync %s: %w", tmpName, err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(fmt.Errorf("failed to chmod %s: %w", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
