// package formatter renders the catalog for display and exports it to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat accepts csv, markdown (or md) and text (or txt).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the default file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// WriteBooks writes one display line per book to w.
func WriteBooks(w io.Writer, books []models.Book) error {
	for _, b := range books {
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// ExportToCSV converts books to CSV with columns: ID, Title, Author, Year, Status
func ExportToCSV(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "Author", "Year", "Status"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, b := range books {
		record := []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			strconv.Itoa(b.Year),
			b.Status.String(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts books to a Markdown document with availability counts and a numbered list.
func ExportToMarkdown(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer
	available, checkedOut := countByStatus(books)

	buf.WriteString("# Library\n\n")
	fmt.Fprintf(&buf, "**Books**: %d\n", len(books))
	fmt.Fprintf(&buf, "**Available**: %d\n", available)
	fmt.Fprintf(&buf, "**Checked out**: %d\n\n", checkedOut)

	if len(books) == 0 {
		buf.WriteString("_The library is empty._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Books\n\n")
	for i, b := range books {
		fmt.Fprintf(&buf, "%d. %s - *%s* (%d) `%s` [#%d]\n", i+1, b.Author, b.Title, b.Year, b.Status, b.ID)
	}

	return buf.Bytes(), nil
}

// ExportToText converts books to plain text, one display line per book.
func ExportToText(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Books: %d\n\n", len(books))
	if err := WriteBooks(&buf, books); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Export renders books in format f.
func Export(books []models.Book, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(books)
	case FormatMarkdown:
		return ExportToMarkdown(books)
	case FormatText:
		return ExportToText(books)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, f)
	}
}

// WriteExport renders books in format f and writes them to path.
//
// An empty path defaults to library{ext} in the working directory. Missing parent directories are created.
func WriteExport(books []models.Book, f Format, path string) (string, error) {
	if path == "" {
		path = "library" + f.Extension()
	}

	data, err := Export(books, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return path, nil
}

func countByStatus(books []models.Book) (available, checkedOut int) {
	for _, b := range books {
		if b.Status == models.StatusCheckedOut {
			checkedOut++
		} else {
			available++
		}
	}
	return available, checkedOut
}
