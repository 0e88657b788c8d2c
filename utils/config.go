package utils

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for a simulation run
type Config struct {
	Generations      int           `json:"generations"`
	OutputDir        string        `json:"output_dir"`
	InitialFile      string        `json:"initial_file"`
	GenerationFile   string        `json:"generation_file"`
	LiveMarker       string        `json:"live_marker"`
	DeadMarker       string        `json:"dead_marker"`
	Verify           bool          `json:"verify"`
	Display          bool          `json:"display"`
	FrameRate        time.Duration `json:"frame_rate"`
	StopOnStagnation bool          `json:"stop_on_stagnation"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Generations:    2,
		OutputDir:      ".",
		InitialFile:    "initial.txt",
		GenerationFile: "generation_%d.txt",
		LiveMarker:     "1",
		DeadMarker:     " ",
		FrameRate:      150 * time.Millisecond,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, config.Validate()
}

// Validate checks the values a run depends on
func (c Config) Validate() error {
	switch {
	case c.Generations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative generations: %d", c.Generations)
	case len(c.LiveMarker) != 1 || len(c.DeadMarker) != 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] markers must be single bytes: %q %q", c.LiveMarker, c.DeadMarker)
	case c.LiveMarker == c.DeadMarker:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] live and dead markers match: %q", c.LiveMarker)
	case c.InitialFile == "":
		return errors.Wrap(ErrInvalidConfig, "[Validate] empty initial file name")
	case strings.Count(c.GenerationFile, "%d") != 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] generation file needs one %%d verb: %q", c.GenerationFile)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative frame rate: %v", c.FrameRate)
	}
	return nil
}
