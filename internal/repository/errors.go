// Package repository holds the MySQL data access of the booking desk and
// the sentinel errors it shares with handlers.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.  Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
