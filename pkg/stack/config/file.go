package config

import (
	"os"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadSettings - overlay an optional YAML settings file onto the defaults.
// A missing file is not an error, flags and prompts fill the gaps.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			llog.Debugf("settings file '%s' not found, using defaults", path)

			return settings, nil
		}

		return nil, merry.Prepend(err, "failed to read settings file")
	}

	if err = yaml.Unmarshal(data, settings); err != nil {
		return nil, merry.Prepend(err, "failed to parse settings file")
	}

	llog.Infof("Settings loaded from '%s'", path)

	return settings, nil
}
