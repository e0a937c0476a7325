package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

// isolate points the global config lookup at an empty directory and clears
// any TRIVY_TUI_* variables inherited from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, k := range []string{
		"TRIVY_TUI_BINARY", "TRIVY_TUI_CACHE_DIR", "TRIVY_TUI_SEVERITY",
		"TRIVY_TUI_IGNORE_UNFIXED", "TRIVY_TUI_SKIP_DB_UPDATE", "TRIVY_TUI_INSECURE",
		"TRIVY_TUI_TIMEOUT", "TRIVY_TUI_LOG_FILE", "TRIVY_TUI_LOG_LEVEL",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Setenv(k, v)
			os.Unsetenv(k)
		}
	}
	return xdg
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "trivy-tui.yaml", "trivy:\n  binary: /opt/trivy\n  severity: HIGH,CRITICAL\n  ignore_unfixed: true\n  timeout: 5m\nlog_level: debug\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Trivy == nil {
		t.Fatal("expected trivy section")
	}
	if cfg.Trivy.BinaryPath == nil || *cfg.Trivy.BinaryPath != "/opt/trivy" {
		t.Fatalf("expected binary=/opt/trivy, got %#v", cfg.Trivy.BinaryPath)
	}
	if cfg.Trivy.Severity == nil || *cfg.Trivy.Severity != "HIGH,CRITICAL" {
		t.Fatalf("expected severity, got %#v", cfg.Trivy.Severity)
	}
	if cfg.Trivy.IgnoreUnfixed == nil || !*cfg.Trivy.IgnoreUnfixed {
		t.Fatalf("expected ignore_unfixed=true")
	}
	if cfg.Trivy.Timeout == nil || *cfg.Trivy.Timeout != "5m" {
		t.Fatalf("expected timeout=5m, got %#v", cfg.Trivy.Timeout)
	}
	if cfg.LogLevel == nil || *cfg.LogLevel != "debug" {
		t.Fatalf("expected log_level=debug, got %#v", cfg.LogLevel)
	}
	if cfg.LogFile != nil {
		t.Fatalf("expected log_file unset, got %q", *cfg.LogFile)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "trivy-tui.yaml", "trivy: [unclosed\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected YAML error")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "trivy-tui.yaml", "log_level: warn\n")
	writeTemp(t, dir, ".trivy-tui.yaml", "log_level: trace\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.LogLevel == nil || *cfg.LogLevel != "trace" {
		t.Fatalf("expected log_level=trace from .trivy-tui.yaml, got %#v", cfg.LogLevel)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	xdg := isolate(t)
	if err := os.MkdirAll(filepath.Join(xdg, "trivy-tui"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, filepath.Join(xdg, "trivy-tui"), "config.yml", "trivy:\n  cache_dir: /var/cache/trivy\n")
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Trivy == nil || cfg.Trivy.CacheDir == nil || *cfg.Trivy.CacheDir != "/var/cache/trivy" {
		t.Fatalf("expected cache_dir from global config, got %#v", cfg.Trivy)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	isolate(t)
	if _, err := LoadGlobal(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
	if cfg.Trivy.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.Trivy.Timeout)
	}
}

func TestLoad_Precedence(t *testing.T) {
	xdg := isolate(t)
	if err := os.MkdirAll(filepath.Join(xdg, "trivy-tui"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, filepath.Join(xdg, "trivy-tui"), "config.yml",
		"trivy:\n  severity: LOW\n  cache_dir: /global\n  timeout: 1m\nlog_level: warn\n")

	dir := t.TempDir()
	writeTemp(t, dir, ".trivy-tui.yml", "trivy:\n  severity: HIGH\n  insecure: true\n")

	t.Setenv("TRIVY_TUI_TIMEOUT", "90s")
	t.Setenv("TRIVY_TUI_SKIP_DB_UPDATE", "true")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Trivy.Severity != "HIGH" {
		t.Fatalf("local file should override global severity, got %q", cfg.Trivy.Severity)
	}
	if cfg.Trivy.CacheDir != "/global" {
		t.Fatalf("global cache_dir should survive, got %q", cfg.Trivy.CacheDir)
	}
	if !cfg.Trivy.Insecure {
		t.Fatal("expected insecure from local file")
	}
	if cfg.Trivy.Timeout != 90*time.Second {
		t.Fatalf("env should override file timeout, got %s", cfg.Trivy.Timeout)
	}
	if !cfg.Trivy.SkipDBUpdate {
		t.Fatal("expected skip_db_update from env")
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected log_level=warn, got %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeTemp(t, dir, "trivy-tui.yml", "trivy:\n  timeout: soon\n")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TRIVY_TUI_INSECURE", "maybe")
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for invalid boolean")
	}
}

func TestLoad_NonPositiveTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("TRIVY_TUI_TIMEOUT", "0s")
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}
