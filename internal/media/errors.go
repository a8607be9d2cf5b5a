package media

import "errors"

var (
	// ErrImageTooLarge indicates the payload exceeds the max image size.
	ErrImageTooLarge = errors.New("image too large")
	// ErrEmptyImage indicates an empty payload where image bytes were expected.
	ErrEmptyImage = errors.New("empty image data")
)
