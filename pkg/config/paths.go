package config

import "path/filepath"

const settingsDirName = ".weft"

// SettingsDir returns the project-local settings directory.
func SettingsDir() string {
	return settingsDirName
}

// BuildSettingsPath returns a path under the settings directory.
func BuildSettingsPath(name string) string {
	return filepath.Join(settingsDirName, name)
}
