package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	appName      = "mangascraper"
	DefaultLabel = "Default"
	profileExt   = ".yaml"
)

var ErrNoConfig = errors.New("no config selected")

// ConfigRoot is %APPDATA%/mangascraper on Windows, otherwise
// $XDG_CONFIG_HOME/mangascraper or ~/.config/mangascraper.
func ConfigRoot() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appName)
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

// ConfigPathByLabel returns the profile file for label, which must exist.
func ConfigPathByLabel(label string) (string, error) {
	path := profilePath(label)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("config %q does not exist", label)
	}

	return path, nil
}

func profilePath(label string) string {
	return filepath.Join(ConfigsDir(), label+profileExt)
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

func setCurrent(label string) error {
	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

// CheckLabel reports whether label can name a profile file.
func CheckLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("label %q cannot contain path separators", label)
	}

	return nil
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(CurrentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil || label == "" {
		return "", ErrNoConfig
	}

	return profilePath(label), nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

// ListConfigs returns every profile, sorted by label.
func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(ConfigsDir())
	if err != nil {
		return nil, err
	}

	activeLabel, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, profileExt) {
			continue
		}

		label := strings.TrimSuffix(name, profileExt)
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), name),
			Active: label == activeLabel,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if err := CheckLabel(label); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	if _, err := ConfigPathByLabel(label); err != nil {
		return err
	}

	return setCurrent(label)
}

// AddConfig copies an existing YAML file in as a new profile.
func AddConfig(label, srcPath string) (string, error) {
	if err := CheckLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	dst := profilePath(label)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if _, err := loadYAML(srcPath); err != nil {
		return "", fmt.Errorf("%s is not a valid config: %w", srcPath, err)
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return "", err
	}

	return dst, os.WriteFile(dst, raw, 0644)
}

// CreateEmptyConfig writes a profile holding the default settings.
func CreateEmptyConfig(label string) (string, error) {
	if err := CheckLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := profilePath(label)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

func RenameConfig(oldLabel, newLabel string) error {
	if err := CheckLabel(newLabel); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	oldPath, err := ConfigPathByLabel(oldLabel)
	if err != nil {
		return err
	}

	newPath := profilePath(newLabel)
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	if active, _ := CurrentLabel(); active == oldLabel {
		return setCurrent(newLabel)
	}

	return nil
}

// RemoveConfig deletes a profile. Removing the active one switches back to
// Default and reports so.
func RemoveConfig(label string) (switchedToDefault bool, err error) {
	if err := CheckLabel(label); err != nil {
		return false, err
	}
	if label == DefaultLabel {
		return false, errors.New("cannot remove the Default config")
	}
	if err := ensureDirs(); err != nil {
		return false, err
	}

	path, err := ConfigPathByLabel(label)
	if err != nil {
		return false, err
	}

	if active, _ := CurrentLabel(); active == label {
		if err := SwitchConfig(DefaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		switchedToDefault = true
	}

	return switchedToDefault, os.Remove(path)
}

// InitDefaultConfig creates the Default profile and makes it active. If it
// already exists it is only activated and os.ErrExist is returned.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	defPath := profilePath(DefaultLabel)

	if _, err := os.Stat(defPath); err == nil {
		if err := setCurrent(DefaultLabel); err != nil {
			return "", err
		}
		return defPath, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), defPath); err != nil {
		return "", err
	}

	return defPath, setCurrent(DefaultLabel)
}
