package delivery

import "errors"

var (
	// ErrNoStrategy indicates a message whose addressing fields match
	// none of the delivery surfaces.
	ErrNoStrategy = errors.New("no delivery strategy for message")
	// ErrFileMissing indicates an image send referencing a path that
	// does not exist on disk.
	ErrFileMissing = errors.New("image file missing")
)
