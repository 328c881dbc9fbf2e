package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the config file location.
const ConfigEnvVar = "HUDCHECK_CONFIG"

// GetConfigPath returns the configuration file path. HUDCHECK_CONFIG wins
// when set, otherwise it is ~/.hudcheck/config.
func GetConfigPath() (string, error) {
	if configPath := os.Getenv(ConfigEnvVar); configPath != "" {
		return configPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".hudcheck", "config"), nil
}
