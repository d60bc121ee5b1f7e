package repositories

import "errors"

// ErrNotFound is returned when the referenced document or row does not exist
var ErrNotFound = errors.New("not found")
