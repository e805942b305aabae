package config

import (
	"errors"
	"os"

	"github.com/tauraamui/graydaemon/pkg/configdef"
	"github.com/tauraamui/graydaemon/pkg/log"
	"github.com/tauraamui/xerror"
)

func destroy() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		return configdef.ErrConfigNotFound
	}

	if err := fs.Remove(path); err != nil {
		return xerror.Errorf("unable to remove config file: %s: %w", path, err)
	}

	log.Info("Removed config file: %s", path)
	return nil
}
