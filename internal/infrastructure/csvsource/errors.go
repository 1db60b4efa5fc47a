package csvsource

import "errors"

var (
	// ErrEmptyFile is returned when the CSV source has no content at all.
	ErrEmptyFile = errors.New("csv source is empty")

	// ErrInvalidEncoding is returned when the content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("csv source is not valid UTF-8")

	// ErrMissingHeader is returned when the source has no header row.
	ErrMissingHeader = errors.New("csv source missing header row")

	// ErrMissingColumns is returned when required columns are absent.
	ErrMissingColumns = errors.New("csv source missing required columns")
)
