package formatter

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	th "github.com/desertthunder/shelf/internal/testing"
)

func sampleBooks() []models.Book {
	books := th.SampleBooks()
	books[1].Status = models.StatusCheckedOut
	return books
}

func TestWriteBooks(t *testing.T) {
	t.Run("display lines", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteBooks(&buf, sampleBooks()); err != nil {
			t.Fatalf("WriteBooks failed: %v", err)
		}

		want := "1: Dune author: Frank Herbert (1965) - AVAILABLE\n" +
			"2: The Left Hand of Darkness author: Ursula K. Le Guin (1969) - CHECKED_OUT\n" +
			"3: Солярис author: Станислав Лем (1961) - AVAILABLE\n"
		if buf.String() != want {
			t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		if err := WriteBooks(&th.FWriter{}, sampleBooks()); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleBooks())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.HasPrefix(output, "ID,Title,Author,Year,Status\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "2,The Left Hand of Darkness,Ursula K. Le Guin,1969,CHECKED_OUT\n") {
			t.Errorf("CSV missing second book, got: %s", output)
		}
		if strings.Count(output, "\n") != 4 {
			t.Errorf("expected 4 lines, got: %s", output)
		}
	})

	t.Run("ExportToCSV quotes commas", func(t *testing.T) {
		data, err := ExportToCSV([]models.Book{models.NewBook(1, "Tea, Earl Grey, Hot", "Picard", 2364)})
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), `"Tea, Earl Grey, Hot"`) {
			t.Errorf("expected quoted title, got: %s", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleBooks())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.HasPrefix(output, "# Library\n") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Books**: 3") {
			t.Errorf("Markdown missing book count")
		}
		if !strings.Contains(output, "**Available**: 2") || !strings.Contains(output, "**Checked out**: 1") {
			t.Errorf("Markdown missing status counts, got: %s", output)
		}
		if !strings.Contains(output, "1. Frank Herbert - *Dune* (1965) `AVAILABLE` [#1]") {
			t.Errorf("Markdown missing first book, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown empty", func(t *testing.T) {
		data, err := ExportToMarkdown(nil)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "The library is empty") {
			t.Errorf("expected empty notice, got: %s", data)
		}
		if strings.Contains(string(data), "## Books") {
			t.Errorf("expected no books section, got: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleBooks())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Books: 3\n\n") {
			t.Errorf("Text missing header, got: %s", output)
		}
		if !strings.Contains(output, "3: Солярис author: Станислав Лем (1961) - AVAILABLE") {
			t.Errorf("Text missing third book, got: %s", output)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		input string
		want  Format
		ext   string
	}{
		{input: "csv", want: FormatCSV, ext: ".csv"},
		{input: "Markdown", want: FormatMarkdown, ext: ".md"},
		{input: "md", want: FormatMarkdown, ext: ".md"},
		{input: "txt", want: FormatText, ext: ".txt"},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Extension() != tt.ext {
				t.Errorf("Extension() = %v, want %v", got.Extension(), tt.ext)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("explicit path creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exports", "books.csv")

		written, err := WriteExport(sampleBooks(), FormatCSV, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}

		th.AssertFileExists(t, path)
		if !strings.Contains(th.MustReadFile(t, path), "Dune") {
			t.Error("export file missing content")
		}
	})

	t.Run("default path", func(t *testing.T) {
		th.MustChdir(t, t.TempDir())

		written, err := WriteExport(sampleBooks(), FormatMarkdown, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if written != "library.md" {
			t.Errorf("expected library.md, got %s", written)
		}
		th.AssertFileExists(t, "library.md")
	})

	t.Run("unknown format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "books.pdf")
		if _, err := WriteExport(sampleBooks(), Format("pdf"), path); err == nil {
			t.Error("expected error for unknown format")
		}
		th.AssertFileMissing(t, path)
	})
}
