package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/ports"
)

// RaceOptions control one race. Zero Steps falls back to the default config.
type RaceOptions struct {
	Steps  int
	Finish float64
	// Random feeds every horse of the race. Nil uses domain.DefaultRandom.
	Random domain.RandomSource
	// Seed is recorded in the result so the race can be replayed.
	Seed uint64
}

type RunRace struct {
	rosters ports.RosterLoader
	store   ports.RaceStore
	log     *slog.Logger
	now     func() time.Time
}

type RunOption func(*RunRace)

func WithLogger(log *slog.Logger) RunOption {
	return func(uc *RunRace) { uc.log = orDiscard(log) }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) RunOption {
	return func(uc *RunRace) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewRunRace wires the race loop. store may be nil, in which case races are not saved.
func NewRunRace(rl ports.RosterLoader, store ports.RaceStore, opts ...RunOption) *RunRace {
	uc := &RunRace{
		rosters: rl,
		store:   store,
		log:     orDiscard(nil),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Start loads the roster and lines the horses up. No horse has moved yet.
func (uc *RunRace) Start(rosterPath string, opts RaceOptions) (*RaceSession, error) {
	roster, hip, err := buildHippodrome(uc.rosters, rosterPath, opts.Random)
	if err != nil {
		uc.log.Error("race.start.failed", "roster_path", rosterPath, "err", err)
		return nil, err
	}

	steps := opts.Steps
	if steps <= 0 {
		steps = domain.DefaultConfig().Race.Steps
	}
	finish := opts.Finish
	if finish < 0 {
		finish = 0
	}

	s := &RaceSession{
		roster:     roster,
		rosterPath: rosterPath,
		hippodrome: hip,
		steps:      steps,
		finish:     finish,
		seed:       opts.Seed,
		startedAt:  uc.now(),
		now:        uc.now,
		log:        uc.log,
	}

	uc.log.Info("race.start",
		"roster", roster.Name,
		"horses", len(hip.Horses()),
		"steps", steps,
		"finish", finish,
		"seed", opts.Seed,
	)
	return s, nil
}

// Execute runs a race to completion and saves it when a store is configured.
// Cancellation is checked between steps; a cancelled race is returned as far
// as it got and is not saved.
func (uc *RunRace) Execute(ctx context.Context, rosterPath string, opts RaceOptions) (domain.RaceResult, string, error) {
	s, err := uc.Start(rosterPath, opts)
	if err != nil {
		return domain.RaceResult{}, "", err
	}

	for !s.Done() {
		if err := ctx.Err(); err != nil {
			uc.log.Warn("race.cancelled", "roster", s.roster.Name, "step", s.step, "err", err)
			return s.Result(), "", err
		}
		s.Advance()
	}

	race := s.Result()
	uc.log.Info("race.finish",
		"roster", race.RosterName,
		"steps", race.Steps,
		"winner", race.Winner.Name,
		"distance", race.Winner.Distance,
	)

	return uc.Save(race)
}

// Save persists a finished race. Without a store it returns the race untouched.
func (uc *RunRace) Save(race domain.RaceResult) (domain.RaceResult, string, error) {
	if uc.store == nil {
		return race, "", nil
	}

	id, err := uc.store.SaveRace(race)
	if err != nil {
		uc.log.Error("race.save.failed", "roster", race.RosterName, "err", err)
		return race, "", err
	}
	race.ID = id
	uc.log.Info("race.saved", "id", id)
	return race, id, nil
}

// RaceSession is a race in progress. It is driven one step at a time, either
// by Execute or by an interactive caller.
type RaceSession struct {
	roster     domain.Roster
	rosterPath string
	hippodrome *domain.Hippodrome

	steps  int
	finish float64
	seed   uint64
	step   int

	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
	log       *slog.Logger
}

func (s *RaceSession) Hippodrome() *domain.Hippodrome { return s.hippodrome }

func (s *RaceSession) RosterName() string { return s.roster.Name }

// Steps is the step budget; Step is how many have been taken.
func (s *RaceSession) Steps() int { return s.steps }

func (s *RaceSession) Step() int { return s.step }

func (s *RaceSession) Finish() float64 { return s.finish }

// Done reports whether the budget is spent or the leader reached the finish.
func (s *RaceSession) Done() bool {
	if s.step >= s.steps {
		return true
	}
	return s.finish > 0 && s.hippodrome.Winner().Distance() >= s.finish
}

// Advance moves every horse once unless the race is already over, and
// reports whether it is over afterwards.
func (s *RaceSession) Advance() bool {
	if s.Done() {
		s.markEnded()
		return true
	}

	s.hippodrome.Move()
	s.step++

	leader := s.hippodrome.Winner()
	s.log.Debug("race.step", "step", s.step, "leader", leader.Name(), "distance", leader.Distance())

	if s.Done() {
		s.markEnded()
		return true
	}
	return false
}

func (s *RaceSession) markEnded() {
	if s.endedAt.IsZero() {
		s.endedAt = s.now()
	}
}

// Result snapshots the race. Winner is Hippodrome.Winner at the time of the call.
func (s *RaceSession) Result() domain.RaceResult {
	ended := s.endedAt
	if ended.IsZero() {
		ended = s.now()
	}

	w := s.hippodrome.Winner()
	return domain.RaceResult{
		RosterName: s.roster.Name,
		RosterPath: s.rosterPath,
		Seed:       s.seed,
		Steps:      s.step,
		Finish:     s.finish,
		StartedAt:  s.startedAt,
		EndedAt:    ended,
		Winner: domain.Standing{
			Place:    1,
			Name:     w.Name(),
			Speed:    w.Speed(),
			Distance: w.Distance(),
		},
		Standings: domain.NewStandings(s.hippodrome.Horses()),
	}
}

func buildHippodrome(rl ports.RosterLoader, rosterPath string, random domain.RandomSource) (domain.Roster, *domain.Hippodrome, error) {
	roster, err := rl.LoadRoster(rosterPath)
	if err != nil {
		return domain.Roster{}, nil, err
	}

	var horses []*domain.Horse
	if roster.Horses != nil {
		horses = make([]*domain.Horse, 0, len(roster.Horses))
	}
	for i, spec := range roster.Horses {
		h, err := spec.Build(domain.WithRandom(random))
		if err != nil {
			return domain.Roster{}, nil, fmt.Errorf("roster %q horse %d: %w", roster.Name, i, err)
		}
		horses = append(horses, h)
	}

	hip, err := domain.NewHippodrome(horses)
	if err != nil {
		return domain.Roster{}, nil, fmt.Errorf("roster %q: %w", roster.Name, err)
	}
	return roster, hip, nil
}
