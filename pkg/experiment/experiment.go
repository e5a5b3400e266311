// Package experiment loads the instances.json files produced by the
// instance generator: a list of experiments, each holding the game
// instances to run.
package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulutsch/clembench/pkg/level"
)

// GameInstance is one playable level within an experiment.
type GameInstance struct {
	GameID int `json:"game_id"`
	level.Config
}

// Experiment is a named group of game instances sharing a
// configuration (grid size, visibility flags and so on).
type Experiment struct {
	Name          string         `json:"name"`
	GameInstances []GameInstance `json:"game_instances"`
}

// File is the top-level instances.json document.
type File struct {
	Experiments []Experiment `json:"experiments"`
}

// Load reads and decodes an instances file, then parses every level to
// surface malformed instances at load time rather than mid-run.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instances file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse instances file %s: %w", path, err)
	}

	for _, exp := range f.Experiments {
		if exp.Name == "" {
			return nil, fmt.Errorf("instances file %s contains an unnamed experiment", path)
		}
		for _, gi := range exp.GameInstances {
			if _, err := level.Parse(gi.Config); err != nil {
				return nil, fmt.Errorf("experiment %q game %d: %w", exp.Name, gi.GameID, err)
			}
		}
	}

	return &f, nil
}

// InstanceCount returns the total number of game instances across all
// experiments.
func (f *File) InstanceCount() int {
	n := 0
	for _, exp := range f.Experiments {
		n += len(exp.GameInstances)
	}
	return n
}
