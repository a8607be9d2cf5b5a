package upload_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcbothq/arcbot/internal/config"
	"github.com/arcbothq/arcbot/internal/media"
	"github.com/arcbothq/arcbot/internal/upload"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUploader(endpoint string) *upload.Uploader {
	return upload.New(config.UploadConfig{
		Endpoint:       endpoint,
		TimeoutSeconds: 5,
	}, discardLogger())
}

func TestFromBytesSuccess(t *testing.T) {
	t.Parallel()

	payload := []byte{0x89, 'P', 'N', 'G'}
	var gotBody struct {
		ImageData string `json:"imageData"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"code": 200, "image_url": "https://img.example/a.png"}`))
	}))
	defer srv.Close()

	url, err := newUploader(srv.URL).FromBytes(context.Background(), payload, ".jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://img.example/a.png" {
		t.Fatalf("unexpected url %q", url)
	}

	wantPrefix := "data:image/jpeg;base64,"
	if !strings.HasPrefix(gotBody.ImageData, wantPrefix) {
		t.Fatalf("expected data uri with prefix %q, got %q", wantPrefix, gotBody.ImageData)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(gotBody.ImageData, wantPrefix))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if string(raw) != string(payload) {
		t.Fatal("uploaded payload does not round-trip")
	}
}

func TestFromBytesBusinessFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 500, "msg": "quota exceeded"}`))
	}))
	defer srv.Close()

	_, err := newUploader(srv.URL).FromBytes(context.Background(), []byte("img"), ".png")
	if !errors.Is(err, upload.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected diagnostic msg in error, got %v", err)
	}
}

func TestFromBytesHTTPFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newUploader(srv.URL).FromBytes(context.Background(), []byte("img"), ".png")
	if !errors.Is(err, upload.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

func TestFromBytesMissingURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 200}`))
	}))
	defer srv.Close()

	_, err := newUploader(srv.URL).FromBytes(context.Background(), []byte("img"), ".png")
	if !errors.Is(err, upload.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

func TestFromBytesTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newUploader(srv.URL).FromBytes(context.Background(), []byte("img"), ".png")
	if !errors.Is(err, upload.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

func TestFromBytesRejectsOversized(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	big := make([]byte, media.MaxImageBytes+1)
	_, err := newUploader(srv.URL).FromBytes(context.Background(), big, ".png")
	if !errors.Is(err, media.ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no network call for oversized payload, got %d", calls)
	}
}

func TestFromPathRejectsOversizedBeforeRead(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "huge.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.Truncate(media.MaxImageBytes + 1); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	f.Close()

	_, err = newUploader(srv.URL).FromPath(context.Background(), path)
	if !errors.Is(err, media.ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no network call for oversized file, got %d", calls)
	}
}

func TestFromPathMissingFile(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	_, err := newUploader(srv.URL).FromPath(context.Background(), filepath.Join(t.TempDir(), "absent.png"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if calls != 0 {
		t.Fatalf("expected no network call for missing file, got %d", calls)
	}
}

func TestFromPathUsesExtensionHint(t *testing.T) {
	t.Parallel()

	var gotBody struct {
		ImageData string `json:"imageData"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"code": 200, "image_url": "https://img.example/b.webp"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "pic.webp")
	if err := os.WriteFile(path, []byte("webp-bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	url, err := newUploader(srv.URL).FromPath(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url == "" {
		t.Fatal("expected a url")
	}
	if !strings.HasPrefix(gotBody.ImageData, "data:image/webp;base64,") {
		t.Fatalf("expected webp data uri, got %q", gotBody.ImageData)
	}
}
