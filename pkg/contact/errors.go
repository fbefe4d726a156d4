package contact

import "errors"

var (
	// ErrMissingFields is returned when a submission fails required-field validation
	ErrMissingFields = errors.New("all fields are required")
)
