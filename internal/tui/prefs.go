package tui

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

// Prefs is the viewer state remembered between runs.
type Prefs struct {
	ShowFullHelp bool `json:"show_full_help"`
}

// DefaultPrefs is what a first run starts with: the one-line help footer.
func DefaultPrefs() Prefs {
	return Prefs{}
}

// prefsPath is replaced in tests.
var prefsPath = defaultPrefsPath

func defaultPrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "trivy-tui", "tui_prefs.json"), nil
}

// LoadPrefs reads the remembered preferences. A missing or unreadable file
// yields DefaultPrefs; the viewer never fails to start over preferences.
func LoadPrefs() Prefs {
	path, err := prefsPath()
	if err != nil {
		return DefaultPrefs()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultPrefs()
	}
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Reading TUI preferences")
		return DefaultPrefs()
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		log.WithError(err).WithField("path", path).Warn("Ignoring unreadable TUI preferences")
		return DefaultPrefs()
	}
	return p
}

// SavePrefs writes p next to a temporary file and renames it into place, so
// an interrupted write leaves the previous preferences intact.
func SavePrefs(p Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tui_prefs-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// savePrefsCmd persists p off the Update loop. Failures are logged only.
func savePrefsCmd(p Prefs) tea.Cmd {
	return func() tea.Msg {
		if err := SavePrefs(p); err != nil {
			log.WithError(err).Warn("Saving TUI preferences")
		}
		return nil
	}
}
