package upload

import "errors"

var (
	// ErrUploadFailed indicates the hosting endpoint rejected the image,
	// answered with an unusable response, or could not be reached.
	ErrUploadFailed = errors.New("image upload failed")
)
