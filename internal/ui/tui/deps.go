package tui

import (
	"log/slog"
	"time"

	"github.com/neighborstan/hippodrome/internal/usecase"
)

type Deps struct {
	Race       *usecase.RunRace
	RosterPath string
	Options    usecase.RaceOptions

	// Tick is the delay between steps. Zero uses the workspace default.
	Tick time.Duration

	Logger *slog.Logger
}
