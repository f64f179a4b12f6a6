package shared

import "fmt"

var (
	// Catalog errors
	ErrBookNotFound    = fmt.Errorf("book not found")
	ErrInvalidStatus   = fmt.Errorf("invalid status")
	ErrMalformedRecord = fmt.Errorf("malformed record")
	ErrDuplicateID     = fmt.Errorf("duplicate book ID")

	// Storage errors
	ErrStorage      = fmt.Errorf("storage failure")
	ErrUnknownStore = fmt.Errorf("unknown storage driver")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
