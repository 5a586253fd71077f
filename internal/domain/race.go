package domain

import (
	"math"
	"sort"
	"time"
)

// Roster is a named list of entrants, usually read from a YAML file.
type Roster struct {
	Name   string
	Horses []HorseSpec
}

// RosterRef is a lightweight reference to a roster file on disk.
type RosterRef struct {
	Name string
	Path string
}

// Standing is one horse's position at the end of a race.
type Standing struct {
	Place    int     `json:"place"`
	Name     string  `json:"name"`
	Speed    float64 `json:"speed"`
	Distance float64 `json:"distance"`
}

// RaceResult is the outcome of one race.
type RaceResult struct {
	ID         string `json:"id,omitempty"`
	RosterName string `json:"roster"`
	RosterPath string `json:"roster_path,omitempty"`

	Seed   uint64  `json:"seed,omitempty"`
	Steps  int     `json:"steps"`
	Finish float64 `json:"finish,omitempty"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Winner    Standing   `json:"winner"`
	Standings []Standing `json:"standings"`
}

// Finite reports whether every speed and distance in the result is a finite
// number. JSON cannot carry the others.
func (r RaceResult) Finite() bool {
	if !finite(r.Winner.Speed) || !finite(r.Winner.Distance) {
		return false
	}
	for _, s := range r.Standings {
		if !finite(s.Speed) || !finite(s.Distance) {
			return false
		}
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// RaceRef is an index entry for a stored race.
type RaceRef struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Roster    string    `json:"roster"`
	Winner    string    `json:"winner"`
	StartedAt time.Time `json:"started_at"`
}

// NewStandings ranks horses by distance, furthest first. Horses with equal
// distance keep their relative order, so place 1 is always Hippodrome.Winner.
func NewStandings(horses []*Horse) []Standing {
	ranked := make([]*Horse, len(horses))
	copy(ranked, horses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance() > ranked[j].Distance()
	})

	out := make([]Standing, 0, len(ranked))
	for i, h := range ranked {
		out = append(out, Standing{
			Place:    i + 1,
			Name:     h.Name(),
			Speed:    h.Speed(),
			Distance: h.Distance(),
		})
	}
	return out
}
