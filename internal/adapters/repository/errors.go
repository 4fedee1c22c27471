package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound        = errors.New("no snapshot published")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
