package qq

import "errors"

var (
	// ErrTokenRequest indicates the app access token could not be issued.
	ErrTokenRequest = errors.New("qq access token request failed")
	// ErrAPIRequest indicates an open platform API call failed.
	ErrAPIRequest = errors.New("qq api request failed")
)
