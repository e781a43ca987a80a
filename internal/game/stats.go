package game

import (
	"os"

	"gopkg.in/yaml.v3"
)

// RunStats accumulates gameplay counters. The simulation updates one
// instance per run; the saved file carries lifetime totals.
type RunStats struct {
	PlaytimeSeconds float64 `yaml:"playtime_seconds"`
	EnemiesDefeated int     `yaml:"enemies_defeated"`
	BossesDefeated  int     `yaml:"bosses_defeated"`
	LevelsCompleted int     `yaml:"levels_completed"`
	HighestLevel    int     `yaml:"highest_level"`
	XPGained        int     `yaml:"xp_gained"`
	DamageDealt     int     `yaml:"damage_dealt"`
	DamageTaken     int     `yaml:"damage_taken"`
	Deaths          int     `yaml:"deaths"`
	ItemsCollected  int     `yaml:"items_collected"`
}

// Merge folds another stats block into this one. Counters add; the
// highest level keeps the maximum.
func (r *RunStats) Merge(o RunStats) {
	r.PlaytimeSeconds += o.PlaytimeSeconds
	r.EnemiesDefeated += o.EnemiesDefeated
	r.BossesDefeated += o.BossesDefeated
	r.LevelsCompleted += o.LevelsCompleted
	if o.HighestLevel > r.HighestLevel {
		r.HighestLevel = o.HighestLevel
	}
	r.XPGained += o.XPGained
	r.DamageDealt += o.DamageDealt
	r.DamageTaken += o.DamageTaken
	r.Deaths += o.Deaths
	r.ItemsCollected += o.ItemsCollected
}

// LoadRunStats reads lifetime stats from disk. A missing file returns an
// empty block without error.
func LoadRunStats(path string) (RunStats, error) {
	var r RunStats
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from settings
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return r, err
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return RunStats{}, err
	}
	return r, nil
}

// SaveRunStats writes lifetime stats to disk.
func SaveRunStats(path string, r RunStats) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) // #nosec G306 -- plain save file
}
