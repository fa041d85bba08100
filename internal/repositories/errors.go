package repositories

import "errors"

// ErrNotFound is returned by id- and key-based lookups when no record
// matches. Callers detect it with errors.Is.
var ErrNotFound = errors.New("record not found")
