package catalog

import "errors"

var (
	// ErrMissingFields is returned when a record fails required-field validation
	ErrMissingFields = errors.New("missing required fields")
)
