package config

import (
	"encoding/json"
	"errors"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tauraamui/graydaemon/pkg/configdef"
	"github.com/tauraamui/graydaemon/pkg/log"
)

// load reads the config file over the defaults, so any field the file
// leaves out keeps its default value.
func load() (configdef.Values, error) {
	values := defaultValues()

	configPath, err := resolveConfigPath()
	if err != nil {
		return configdef.Values{}, err
	}

	log.Info("Resolved config file location: %s", configPath)
	file, err := readConfigFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return configdef.Values{}, configdef.ErrConfigNotFound
		}
		return configdef.Values{}, err
	}

	if err := unmarshal(file, &values); err != nil {
		return configdef.Values{}, err
	}

	if err = values.RunValidate(); err != nil {
		return configdef.Values{}, err
	}

	return values, nil
}

var readConfigFile = func(path string) ([]byte, error) {
	return afero.ReadFile(fs, path)
}

func unmarshal(content []byte, values *configdef.Values) error {
	err := json.Unmarshal(content, values)
	if err != nil {
		return pkgerrors.Errorf("parsing configuration error: %v", err)
	}
	return nil
}
