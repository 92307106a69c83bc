package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[output]
disassemble = false

[trace]
enabled = true

[log]
verbosity = 2
file = "logs/pratt.log"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.Disassemble {
		t.Fatalf("expected disassembly off")
	}
	if !cfg.Trace.Enabled {
		t.Fatalf("expected tracing on")
	}
	if cfg.Log.Verbosity != 2 {
		t.Fatalf("expected verbosity 2, got %d", cfg.Log.Verbosity)
	}
	if want := filepath.Join(dir, "logs", "pratt.log"); cfg.Log.File != want {
		t.Fatalf("expected log file %s, got %s", want, cfg.Log.File)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[trace]\nenabled = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Output.Disassemble {
		t.Fatalf("disassembly should default to on")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[output]\ndisasemble = false\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "output.disasemble") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[output\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\ndisassemble = false\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if cfg.Output.Disassemble {
		t.Fatalf("expected the parent config to be used")
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Fatalf("unexpected path %s", cfg.Path)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Output.Disassemble || cfg.Trace.Enabled || cfg.Log.Verbosity != 0 || cfg.Path != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
