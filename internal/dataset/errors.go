package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable indicates a required data file is missing, unreadable or malformed.
	ErrDataUnavailable = errors.New("dataset: data unavailable")

	// ErrSelectionOutOfRange indicates a selection outside its closed enumeration.
	ErrSelectionOutOfRange = errors.New("dataset: selection out of range")

	// ErrMalformed indicates a table whose contents cannot be parsed.
	ErrMalformed = errors.New("dataset: malformed table")
)

// DataError ties a load failure to the file it came from. It matches both
// ErrDataUnavailable and the underlying cause under errors.Is.
type DataError struct {
	Path    string
	Wrapped error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataUnavailable, e.Path, e.Wrapped)
}

func (e *DataError) Unwrap() []error {
	return []error{ErrDataUnavailable, e.Wrapped}
}

// Unavailable wraps err as a DataError for path. A nil err stays nil.
func Unavailable(path string, err error) error {
	if err == nil {
		return nil
	}
	return &DataError{Path: path, Wrapped: err}
}
