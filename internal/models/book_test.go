package models

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/shared"
)

func TestStatus(t *testing.T) {
	t.Run("ParseStatus", func(t *testing.T) {
		tc := []struct {
			name  string
			input string
			want  Status
		}{
			{name: "available", input: "AVAILABLE", want: StatusAvailable},
			{name: "checked out", input: "CHECKED_OUT", want: StatusCheckedOut},
			{name: "lower case", input: "checked_out", want: StatusCheckedOut},
			{name: "surrounding whitespace", input: "  available\n", want: StatusAvailable},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				got, err := ParseStatus(tt.input)
				if err != nil {
					t.Fatalf("ParseStatus(%q) returned error: %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.want)
				}
			})
		}
	})

	t.Run("ParseStatus rejects other values", func(t *testing.T) {
		for _, input := range []string{"", "invalid_value", "LOST", "checked out"} {
			if _, err := ParseStatus(input); !errors.Is(err, shared.ErrInvalidStatus) {
				t.Errorf("ParseStatus(%q): expected ErrInvalidStatus, got %v", input, err)
			}
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		if StatusAvailable.Toggle() != StatusCheckedOut {
			t.Error("expected AVAILABLE to toggle to CHECKED_OUT")
		}
		if StatusCheckedOut.Toggle() != StatusAvailable {
			t.Error("expected CHECKED_OUT to toggle to AVAILABLE")
		}
	})

	t.Run("UnmarshalText is exact", func(t *testing.T) {
		var s Status
		if err := s.UnmarshalText([]byte("available")); !errors.Is(err, shared.ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus for lower case stored value, got %v", err)
		}
		if err := s.UnmarshalText([]byte("CHECKED_OUT")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != StatusCheckedOut {
			t.Errorf("expected CHECKED_OUT, got %v", s)
		}
	})

	t.Run("MarshalText rejects zero value", func(t *testing.T) {
		var s Status
		if _, err := s.MarshalText(); !errors.Is(err, shared.ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})
}

func TestBook(t *testing.T) {
	t.Run("NewBook defaults to available", func(t *testing.T) {
		b := NewBook(1, "Dune", "Herbert", 1965)
		if b.Status != StatusAvailable {
			t.Errorf("expected AVAILABLE, got %v", b.Status)
		}
		if err := b.Validate(); err != nil {
			t.Errorf("expected valid book, got %v", err)
		}
	})

	t.Run("String", func(t *testing.T) {
		b := NewBook(7, "Мастер и Маргарита", "Булгаков", 1967)
		want := "7: Мастер и Маргарита author: Булгаков (1967) - AVAILABLE"
		if got := b.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name string
			book Book
		}{
			{name: "zero id", book: NewBook(0, "Dune", "Herbert", 1965)},
			{name: "blank title", book: NewBook(1, "  ", "Herbert", 1965)},
			{name: "empty author", book: NewBook(1, "Dune", "", 1965)},
			{name: "bad status", book: Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965, Status: "LOST"}},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.book.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			})
		}
	})

	t.Run("Validate accepts any year", func(t *testing.T) {
		for _, year := range []int{-500, 0, 3000} {
			if err := NewBook(1, "Dune", "Herbert", year).Validate(); err != nil {
				t.Errorf("year %d: unexpected error %v", year, err)
			}
		}
	})

	t.Run("JSON key order", func(t *testing.T) {
		data, err := json.Marshal(NewBook(1, "Dune", "Herbert", 1965))
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		want := `{"id":1,"title":"Dune","author":"Herbert","year":1965,"status":"AVAILABLE"}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})
}

func TestRecord(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		b := Book{ID: 3, Title: "Dune", Author: "Herbert", Year: 1965, Status: StatusCheckedOut}

		got, err := BookFromRecord(b.Record())
		if err != nil {
			t.Fatalf("BookFromRecord failed: %v", err)
		}
		if got != b {
			t.Errorf("got %+v, want %+v", got, b)
		}
	})

	t.Run("decoded JSON numbers", func(t *testing.T) {
		var r Record
		if err := json.Unmarshal([]byte(`{"id":2,"title":"Dune","author":"Herbert","year":1965,"status":"AVAILABLE"}`), &r); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}

		got, err := BookFromRecord(r)
		if err != nil {
			t.Fatalf("BookFromRecord failed: %v", err)
		}
		if got.ID != 2 || got.Year != 1965 {
			t.Errorf("unexpected book %+v", got)
		}
	})

	t.Run("exact json numbers", func(t *testing.T) {
		r := NewBook(1, "Dune", "Herbert", 1965).Record()
		r[KeyID] = json.Number("9007199254740993")

		got, err := BookFromRecord(r)
		if err != nil {
			t.Fatalf("BookFromRecord failed: %v", err)
		}
		if got.ID != 9007199254740993 {
			t.Errorf("expected id 9007199254740993, got %d", got.ID)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		valid := func() Record { return NewBook(1, "Dune", "Herbert", 1965).Record() }

		tc := []struct {
			name   string
			mutate func(Record)
			key    string
		}{
			{name: "missing id", mutate: func(r Record) { delete(r, KeyID) }, key: KeyID},
			{name: "missing title", mutate: func(r Record) { delete(r, KeyTitle) }, key: KeyTitle},
			{name: "missing status", mutate: func(r Record) { delete(r, KeyStatus) }, key: KeyStatus},
			{name: "text year", mutate: func(r Record) { r[KeyYear] = "1965" }, key: KeyYear},
			{name: "fractional id", mutate: func(r Record) { r[KeyID] = 1.5 }, key: KeyID},
			{name: "negative id", mutate: func(r Record) { r[KeyID] = -1 }, key: KeyID},
			{name: "huge float year", mutate: func(r Record) { r[KeyYear] = 1e300 }, key: KeyYear},
			{name: "infinite year", mutate: func(r Record) { r[KeyYear] = math.Inf(1) }, key: KeyYear},
			{name: "exponent number year", mutate: func(r Record) { r[KeyYear] = json.Number("1e300") }, key: KeyYear},
			{name: "number beyond int64", mutate: func(r Record) { r[KeyID] = json.Number("92233720368547758070") }, key: KeyID},
			{name: "numeric author", mutate: func(r Record) { r[KeyAuthor] = 42 }, key: KeyAuthor},
			{name: "unknown status", mutate: func(r Record) { r[KeyStatus] = "LOST" }, key: ""},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				r := valid()
				tt.mutate(r)

				_, err := BookFromRecord(r)
				if !errors.Is(err, shared.ErrMalformedRecord) {
					t.Fatalf("expected ErrMalformedRecord, got %v", err)
				}
				if tt.key != "" && !strings.Contains(err.Error(), tt.key) {
					t.Errorf("expected error to name key %q, got %v", tt.key, err)
				}
			})
		}
	})
}
