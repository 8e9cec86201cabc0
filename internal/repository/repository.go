// Package repository holds the domain model of the storefront and the
// storage interfaces the service layer depends on. Implementations live in
// the mongo and memory subpackages.
package repository

import "errors"

// ErrNotFound is returned when the requested document does not exist in the
// selected collection.
var ErrNotFound = errors.New("not found")
