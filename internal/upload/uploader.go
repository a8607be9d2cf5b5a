// Package upload turns local image bytes into a publicly fetchable URL
// by pushing them to an image hosting endpoint. Group and channel sends
// reference media by URL only, so every image they deliver passes
// through here first.
package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/arcbothq/arcbot/internal/config"
	"github.com/arcbothq/arcbot/internal/media"
)

type uploadRequest struct {
	ImageData string `json:"imageData"`
}

type uploadResponse struct {
	Code     int    `json:"code"`
	Msg      string `json:"msg"`
	ImageURL string `json:"image_url"`
}

// Uploader posts base64 data URIs to the hosting endpoint. Failures are
// reported as wrapped ErrUploadFailed values; nothing panics or escapes
// past the method boundary.
type Uploader struct {
	endpoint   string
	httpClient *http.Client
	log        *slog.Logger
}

func New(cfg config.UploadConfig, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultUploadTimeoutSec) * time.Second
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultUploadEndpoint
	}
	return &Uploader{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With(slog.String("component", "upload")),
	}
}

// FromPath uploads the file at path. Files that are missing or over the
// size limit fail before any network traffic happens.
func (u *Uploader) FromPath(ctx context.Context, path string) (string, error) {
	data, err := media.ReadFileWithLimit(path, media.MaxImageBytes)
	if err != nil {
		u.log.Error("read upload source",
			slog.String("path", path),
			slog.Any("error", err))
		return "", err
	}
	return u.FromBytes(ctx, data, filepath.Ext(path))
}

// FromBytes uploads raw image bytes. extHint picks the MIME type for
// the data URI; unknown hints fall back to image/png.
func (u *Uploader) FromBytes(ctx context.Context, data []byte, extHint string) (string, error) {
	if len(data) == 0 {
		return "", media.ErrEmptyImage
	}
	if int64(len(data)) > media.MaxImageBytes {
		return "", fmt.Errorf("%w: %d bytes, max %d", media.ErrImageTooLarge, len(data), media.MaxImageBytes)
	}

	uri := "data:" + media.TypeByExtension(extHint) + ";base64," + base64.StdEncoding.EncodeToString(data)
	body, err := json.Marshal(uploadRequest{ImageData: uri})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		u.log.Error("upload request failed", slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		u.log.Error("upload rejected", slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		u.log.Error("decode upload response", slog.Any("error", err))
		return "", fmt.Errorf("%w: decode response: %v", ErrUploadFailed, err)
	}
	if out.Code != http.StatusOK {
		u.log.Error("upload refused",
			slog.Int("code", out.Code),
			slog.String("msg", out.Msg))
		return "", fmt.Errorf("%w: code %d %s", ErrUploadFailed, out.Code, out.Msg)
	}
	if out.ImageURL == "" {
		u.log.Error("upload response missing image_url")
		return "", fmt.Errorf("%w: response missing image_url", ErrUploadFailed)
	}

	u.log.Debug("image uploaded",
		slog.Int("bytes", len(data)),
		slog.String("url", out.ImageURL))
	return out.ImageURL, nil
}
