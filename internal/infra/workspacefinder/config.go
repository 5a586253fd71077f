package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neighborstan/hippodrome/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads hippodrome.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	race := y.Hippodrome.Race
	if race.Steps != nil {
		if *race.Steps <= 0 {
			return cfg, invalidConfig(path, "race.steps", "must be positive")
		}
		cfg.Race.Steps = *race.Steps
	}
	if race.Finish != nil {
		if *race.Finish < 0 {
			return cfg, invalidConfig(path, "race.finish", "cannot be negative")
		}
		cfg.Race.Finish = *race.Finish
	}
	if race.Seed != nil {
		cfg.Race.Seed = *race.Seed
	}
	if tick := strings.TrimSpace(race.Tick); tick != "" {
		d, err := time.ParseDuration(tick)
		if err != nil {
			return cfg, invalidConfig(path, "race.tick", err.Error())
		}
		if d <= 0 {
			return cfg, invalidConfig(path, "race.tick", "must be positive")
		}
		cfg.Race.Tick = d
	}

	if y.Hippodrome.Defaults.Roster != "" {
		cfg.Defaults.Roster = y.Hippodrome.Defaults.Roster
	}
	if y.Hippodrome.Paths.RostersDir != "" {
		cfg.Paths.RostersDir = y.Hippodrome.Paths.RostersDir
	}
	if y.Hippodrome.Paths.RacesDir != "" {
		cfg.Paths.RacesDir = y.Hippodrome.Paths.RacesDir
	}

	return cfg, nil
}

func invalidConfig(path, field, msg string) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}

type yamlConfig struct {
	Hippodrome struct {
		Race struct {
			Steps  *int     `yaml:"steps"`
			Finish *float64 `yaml:"finish"`
			Seed   *uint64  `yaml:"seed"`
			Tick   string   `yaml:"tick"`
		} `yaml:"race"`

		Defaults struct {
			Roster string `yaml:"roster"`
		} `yaml:"defaults"`

		Paths struct {
			RostersDir string `yaml:"rosters_dir"`
			RacesDir   string `yaml:"races_dir"`
		} `yaml:"paths"`
	} `yaml:"hippodrome"`
}
