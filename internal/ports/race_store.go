package ports

import "github.com/neighborstan/hippodrome/internal/domain"

// RaceStore persists race results.
type RaceStore interface {
	SaveRace(race domain.RaceResult) (id string, err error)
}

// RaceCatalog reads back stored races.
type RaceCatalog interface {
	ListRaces() ([]domain.RaceRef, error)
	LoadRace(id string) (domain.RaceResult, error)
}
