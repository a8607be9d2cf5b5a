package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcbothq/arcbot/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.Server.Addr != config.DefaultHTTPAddr {
		t.Fatalf("expected default addr %q, got %q", config.DefaultHTTPAddr, cfg.Server.Addr)
	}
	if cfg.Resources.Dir != config.DefaultResourceDir {
		t.Fatalf("expected default resource dir %q, got %q", config.DefaultResourceDir, cfg.Resources.Dir)
	}
	if cfg.Upload.Endpoint != config.DefaultUploadEndpoint {
		t.Fatalf("expected default upload endpoint, got %q", cfg.Upload.Endpoint)
	}
	if cfg.Upload.TimeoutSeconds != config.DefaultUploadTimeoutSec {
		t.Fatalf("expected default upload timeout, got %d", cfg.Upload.TimeoutSeconds)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[log]
level = "debug"
format = "json"

[server]
addr = ":9090"

[qq]
app_id = "102000001"
app_secret = "secret"
sandbox = true

[resources]
dir = "data"
reload_cron = "0 4 * * *"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %q", cfg.Server.Addr)
	}
	if cfg.QQ.AppID != "102000001" || !cfg.QQ.Sandbox {
		t.Fatalf("unexpected qq config: %+v", cfg.QQ)
	}
	if cfg.Resources.ReloadCron != "0 4 * * *" {
		t.Fatalf("expected reload cron, got %q", cfg.Resources.ReloadCron)
	}
	if cfg.Upload.Endpoint != config.DefaultUploadEndpoint {
		t.Fatalf("upload endpoint should keep its default, got %q", cfg.Upload.Endpoint)
	}
}

func TestLoadEnvOverridesCredentials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[qq]
app_id = "file-id"
app_secret = "file-secret"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("QQ_APP_ID", "env-id")
	t.Setenv("QQ_APP_SECRET", " env-secret ")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.QQ.AppID != "env-id" {
		t.Fatalf("expected env app id, got %q", cfg.QQ.AppID)
	}
	if cfg.QQ.AppSecret != "env-secret" {
		t.Fatalf("expected trimmed env secret, got %q", cfg.QQ.AppSecret)
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error without credentials")
	}
	if !strings.Contains(err.Error(), "AppID") {
		t.Fatalf("expected AppID in validation error, got %v", err)
	}

	cfg.QQ.AppID = "102000001"
	cfg.QQ.AppSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	prod := config.QQConfig{}
	if got := prod.BaseURL(); got != "https://api.sgroup.qq.com" {
		t.Fatalf("unexpected production base url: %q", got)
	}
	sandbox := config.QQConfig{Sandbox: true}
	if got := sandbox.BaseURL(); got != "https://sandbox.api.sgroup.qq.com" {
		t.Fatalf("unexpected sandbox base url: %q", got)
	}
}
