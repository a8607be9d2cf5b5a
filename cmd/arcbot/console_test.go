package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConsoleFixture(t *testing.T) (cfgPath, resourceDir string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath = filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[log]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	resourceDir = filepath.Join(dir, "resources")
	if err := os.MkdirAll(resourceDir, 0o755); err != nil {
		t.Fatalf("mkdir resources: %v", err)
	}
	sources := map[string]string{
		"maps":    `{"dam": {"name": "Dam Battlegrounds", "filename": "dam.png"}}`,
		"weapons": `{}`,
		"arc":     `{}`,
	}
	for cat, src := range sources {
		if err := os.WriteFile(filepath.Join(resourceDir, cat+".json"), []byte(src), 0o644); err != nil {
			t.Fatalf("write %s source: %v", cat, err)
		}
	}
	return cfgPath, resourceDir
}

func TestConsoleDispatchesCommands(t *testing.T) {
	cfgPath, resourceDir := writeConsoleFixture(t)

	in := strings.NewReader("/map list\nexit\n")
	var out bytes.Buffer
	if err := runConsole(cfgPath, resourceDir, in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Dam Battlegrounds") {
		t.Fatalf("expected map listing in output, got %q", got)
	}
	if strings.Contains(got, "未知命令") {
		t.Fatalf("expected no unknown-command reply, got %q", got)
	}
}

func TestConsoleReportsUnknownCommands(t *testing.T) {
	cfgPath, resourceDir := writeConsoleFixture(t)

	in := strings.NewReader("bogus\nquit\n")
	var out bytes.Buffer
	if err := runConsole(cfgPath, resourceDir, in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "未知命令") {
		t.Fatalf("expected unknown-command reply, got %q", out.String())
	}
}
