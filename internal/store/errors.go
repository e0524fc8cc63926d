package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when an insert collides with an existing
// email address.
var ErrEmailTaken = errors.New("email already exists")
