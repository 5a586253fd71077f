package usecase

import (
	"context"
	"log/slog"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/ports"
)

type ValidateRoster struct {
	rosters ports.RosterLoader
	log     *slog.Logger
}

func NewValidateRoster(rl ports.RosterLoader, log *slog.Logger) *ValidateRoster {
	return &ValidateRoster{rosters: rl, log: orDiscard(log)}
}

// Execute loads the roster and builds its hippodrome without running a race.
func (uc *ValidateRoster) Execute(ctx context.Context, rosterPath string) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}

	roster, hip, err := buildHippodrome(uc.rosters, rosterPath, nil)
	if err != nil {
		uc.log.Warn("roster.invalid", "roster_path", rosterPath, "err", err)
		return domain.Roster{}, err
	}

	uc.log.Info("roster.valid", "roster", roster.Name, "horses", len(hip.Horses()))
	return roster, nil
}
