package media

import (
	"fmt"
	"io"
	"os"
)

const (
	// MaxImageBytes is the max accepted source image size. Larger files
	// are rejected before any read or network call.
	MaxImageBytes int64 = 10 * 1024 * 1024
)

// ReadAllWithLimit reads from reader and rejects payloads larger than maxBytes.
func ReadAllWithLimit(reader io.Reader, maxBytes int64) ([]byte, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max bytes must be greater than 0")
	}
	limited := &io.LimitedReader{
		R: reader,
		N: maxBytes + 1,
	}
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: max %d bytes", ErrImageTooLarge, maxBytes)
	}
	return data, nil
}

// ReadFileWithLimit reads a file, rejecting it by size before the read
// when the stat already shows it over the limit.
func ReadFileWithLimit(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrImageTooLarge, info.Size(), maxBytes)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAllWithLimit(f, maxBytes)
}
