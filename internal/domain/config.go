package domain

import "time"

// Config represents the Hippodrome configuration loaded from hippodrome.yaml.
type Config struct {
	Race     RaceConfig
	Defaults DefaultsConfig
	Paths    PathsConfig
}

// RaceConfig controls the caller-side race loop.
type RaceConfig struct {
	// Steps is the number of hippodrome moves per race.
	Steps int
	// Finish ends the race early once the leader reaches it. Zero disables it.
	Finish float64
	// Seed makes races reproducible. Zero means nondeterministic.
	Seed uint64
	// Tick is the frame interval of the live view.
	Tick time.Duration
}

type DefaultsConfig struct {
	Roster string
}

type PathsConfig struct {
	RostersDir string
	RacesDir   string
}

// DefaultConfig provides sane defaults if hippodrome.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Race: RaceConfig{
			Steps: 100,
			Tick:  200 * time.Millisecond,
		},
		Defaults: DefaultsConfig{
			Roster: "derby",
		},
		Paths: PathsConfig{
			RostersDir: "rosters",
			RacesDir:   "races",
		},
	}
}

// WorkspaceSpec describes where a workspace should be created.
type WorkspaceSpec struct {
	Root string
}
