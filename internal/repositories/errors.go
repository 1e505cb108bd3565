package repositories

import "errors"

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")
