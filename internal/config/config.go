package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds a single trivy invocation.
const DefaultTimeout = 10 * time.Minute

// FileConfig is the on-disk YAML configuration shape for trivy-tui.
type FileConfig struct {
	Trivy    *TrivyConfig `yaml:"trivy"`
	LogFile  *string      `yaml:"log_file"`
	LogLevel *string      `yaml:"log_level"`
}

// TrivyConfig holds the settings passed on to the trivy binary.
type TrivyConfig struct {
	// BinaryPath is an explicit path to the trivy binary. If empty, trivy is
	// looked up in $PATH.
	BinaryPath *string `yaml:"binary"`

	CacheDir      *string `yaml:"cache_dir"`
	Severity      *string `yaml:"severity"`
	IgnoreUnfixed *bool   `yaml:"ignore_unfixed"`
	SkipDBUpdate  *bool   `yaml:"skip_db_update"`
	Insecure      *bool   `yaml:"insecure"`

	// Timeout is a Go duration string such as "5m".
	Timeout *string `yaml:"timeout"`
}

// Config is the resolved configuration after files and environment have been
// merged.
type Config struct {
	Trivy    Trivy
	LogFile  string `env:"TRIVY_TUI_LOG_FILE"`
	LogLevel string `env:"TRIVY_TUI_LOG_LEVEL"`
}

// Trivy is the resolved trivy section.
type Trivy struct {
	BinaryPath    string        `env:"TRIVY_TUI_BINARY"`
	CacheDir      string        `env:"TRIVY_TUI_CACHE_DIR"`
	Severity      string        `env:"TRIVY_TUI_SEVERITY"`
	IgnoreUnfixed bool          `env:"TRIVY_TUI_IGNORE_UNFIXED"`
	SkipDBUpdate  bool          `env:"TRIVY_TUI_SKIP_DB_UPDATE"`
	Insecure      bool          `env:"TRIVY_TUI_INSECURE"`
	Timeout       time.Duration `env:"TRIVY_TUI_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Trivy:    Trivy{Timeout: DefaultTimeout},
		LogLevel: "info",
	}
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given directory.
// It supports .trivy-tui.yml/.yaml and trivy-tui.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".trivy-tui.yml", ".trivy-tui.yaml", "trivy-tui.yml", "trivy-tui.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, ErrNoConfig
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, ErrNoConfig
	}
	p := filepath.Join(base, "trivy-tui", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, ErrNoConfig
}

// ErrNoConfig is returned by LoadLocal and LoadGlobal when no file exists.
var ErrNoConfig = errors.New("no config file")

// Load resolves the configuration for a run started in dir. Precedence,
// lowest first: defaults, global file, local file, environment.
func Load(dir string) (Config, error) {
	cfg := Default()

	for _, load := range []func() (FileConfig, error){
		LoadGlobal,
		func() (FileConfig, error) { return LoadLocal(dir) },
	} {
		fc, err := load()
		if errors.Is(err, ErrNoConfig) {
			continue
		}
		if err != nil {
			return Config{}, err
		}
		if err := cfg.merge(fc); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if cfg.Trivy.Timeout <= 0 {
		return Config{}, fmt.Errorf("trivy timeout must be positive, got %s", cfg.Trivy.Timeout)
	}
	return cfg, nil
}

func (c *Config) merge(fc FileConfig) error {
	if fc.LogFile != nil {
		c.LogFile = *fc.LogFile
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.Trivy == nil {
		return nil
	}
	t := fc.Trivy
	if t.BinaryPath != nil {
		c.Trivy.BinaryPath = *t.BinaryPath
	}
	if t.CacheDir != nil {
		c.Trivy.CacheDir = *t.CacheDir
	}
	if t.Severity != nil {
		c.Trivy.Severity = *t.Severity
	}
	if t.IgnoreUnfixed != nil {
		c.Trivy.IgnoreUnfixed = *t.IgnoreUnfixed
	}
	if t.SkipDBUpdate != nil {
		c.Trivy.SkipDBUpdate = *t.SkipDBUpdate
	}
	if t.Insecure != nil {
		c.Trivy.Insecure = *t.Insecure
	}
	if t.Timeout != nil {
		d, err := time.ParseDuration(*t.Timeout)
		if err != nil {
			return fmt.Errorf("invalid trivy.timeout %q: %w", *t.Timeout, err)
		}
		c.Trivy.Timeout = d
	}
	return nil
}
