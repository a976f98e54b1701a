package storage

import "errors"

// ErrRedirectNotFound is returned when no redirect target is stored for a session.
var ErrRedirectNotFound = errors.New("redirect target not found")
