package tui

import "github.com/neighborstan/hippodrome/internal/domain"

// tickMsg carries the sequence of the tick chain that produced it.
// Ticks from a chain that was paused are dropped.
type tickMsg struct {
	seq int
}

type raceSavedMsg struct {
	race domain.RaceResult
	id   string
	err  error
}
