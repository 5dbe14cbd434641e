package repository

import "errors"

// ErrNotFound is returned when a lookup matches no record. Callers check it
// with errors.Is.
var ErrNotFound = errors.New("record not found")
