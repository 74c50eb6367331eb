package domain

import "errors"

// ErrNotFound is returned by catalog, store and service functions when the
// requested place, category or diary entry does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank diary description, rating out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPersistence is returned by store mutators when the in-memory change was
// applied but writing the snapshot to its persistence slot failed.
// The in-memory state stays authoritative; callers decide whether to surface it.
var ErrPersistence = errors.New("persistence write failed")
