package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/xerror"
)

const (
	vendorName     = "tacusci"
	appName        = "graydaemon"
	configFileName = "config.json"
	configPathEnv  = "GRAYD_CONFIG"
)

var fs afero.Fs = afero.NewOsFs()

func resolveConfigPath() (string, error) {
	configPath := os.Getenv(configPathEnv)
	if len(configPath) > 0 {
		return configPath, nil
	}

	configParentDir, err := userConfigDir()
	if err != nil {
		return "", xerror.Errorf("unable to resolve %s location: %w", configFileName, err)
	}

	return filepath.Join(
		configParentDir,
		vendorName,
		appName,
		configFileName), nil
}

var userConfigDir = func() (string, error) {
	return os.UserConfigDir()
}
