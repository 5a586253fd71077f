package ports

import "github.com/neighborstan/hippodrome/internal/domain"

// RosterLoader loads rosters from a source (e.g., filesystem).
type RosterLoader interface {
	LoadRoster(path string) (domain.Roster, error)
	ListRosters(root string) ([]domain.RosterRef, error)
}
