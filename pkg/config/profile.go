package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// SaveUserName persists the user's display name into the settings file so
// the onboarding prompt is skipped on subsequent runs.
func SaveUserName(name string) error {
	viper.Set("user.name", name)
	if cfg != nil {
		cfg.User.Name = name
	}

	if err := os.MkdirAll(SettingsDir(), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		path = BuildSettingsPath("settings.yaml")
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
