package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
)

// Status is the availability of a [Book].
type Status string

const (
	StatusAvailable  Status = "AVAILABLE"
	StatusCheckedOut Status = "CHECKED_OUT"
)

// Statuses lists every valid [Status] in display order.
var Statuses = []Status{StatusAvailable, StatusCheckedOut}

// ParseStatus converts user input into a [Status], ignoring case and surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q (use %s or %s)", shared.ErrInvalidStatus, s, StatusAvailable, StatusCheckedOut)
}

// Valid reports whether s is one of the enumerated values.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Toggle returns the other status.
func (s Status) Toggle() Status {
	if s == StatusAvailable {
		return StatusCheckedOut
	}
	return StatusAvailable
}

func (s Status) String() string { return string(s) }

// MarshalText implements [encoding.TextMarshaler].
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidStatus, string(s))
	}
	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Stored values must match exactly.
func (s *Status) UnmarshalText(text []byte) error {
	candidate := Status(text)
	if !candidate.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrInvalidStatus, string(text))
	}
	*s = candidate
	return nil
}

// Record is the structured form of a [Book] with the keys id, title, author, year and status.
type Record map[string]any

const (
	KeyID     = "id"
	KeyTitle  = "title"
	KeyAuthor = "author"
	KeyYear   = "year"
	KeyStatus = "status"
)

// RecordKeys lists the keys of a [Record] in persisted order.
var RecordKeys = []string{KeyID, KeyTitle, KeyAuthor, KeyYear, KeyStatus}
