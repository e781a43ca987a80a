package game

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mwrenn/deepdelve/internal/logger"
)

// Settings is the user-editable game configuration.
type Settings struct {
	Volume     float64 `yaml:"volume"`     // 0..1 master volume
	ShowFPS    bool    `yaml:"show_fps"`
	ShowDebug  bool    `yaml:"show_debug"` // AI state labels, hitboxes
	Difficulty string  `yaml:"difficulty"` // easy | normal | hard
	SavePath   string  `yaml:"save_path"`  // run statistics file
}

// DefaultSettings returns the configuration used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Volume:     0.7,
		Difficulty: "normal",
		SavePath:   "deepdelve_stats.yaml",
	}
}

// LoadSettings reads settings from a YAML file. A missing or malformed
// file falls back to defaults with a logged warning; it is never fatal.
func LoadSettings(path string) Settings {
	s := DefaultSettings()
	data, err := os.ReadFile(path) // #nosec G304 -- user-chosen config path
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.WithError(err).Warn("could not read config, using defaults")
		}
		return s
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		logger.Log.WithError(err).Warn("malformed config, using defaults")
		return DefaultSettings()
	}
	return s
}

// DifficultyScalar converts the difficulty name to the enemy stat
// multiplier. Unknown names read as normal.
func (s Settings) DifficultyScalar() float64 {
	switch s.Difficulty {
	case "easy":
		return 0.8
	case "hard":
		return 1.3
	default:
		return 1.0
	}
}
