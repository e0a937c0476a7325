// Package config loads trivy-tui configuration from local and global YAML
// files and TRIVY_TUI_* environment variables, with precedence rules.
package config
