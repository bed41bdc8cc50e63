package calculation

import "errors"

var (
	// ErrUnsupportedYear is returned when no table vintage exists for a tax year
	ErrUnsupportedYear = errors.New("unsupported tax year")
	// ErrUnknownCategory is returned for a status, category or taxpayer type with no table
	ErrUnknownCategory = errors.New("unknown category")

	errMissingInput = errors.New("no input supplied for this calculation")
)
