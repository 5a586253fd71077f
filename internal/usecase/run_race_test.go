package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/ports"
)

// --- fakes ---

type fakeRosterLoader struct {
	roster domain.Roster
	err    error
	loaded []string
}

func (f *fakeRosterLoader) LoadRoster(path string) (domain.Roster, error) {
	f.loaded = append(f.loaded, path)
	return f.roster, f.err
}

func (f *fakeRosterLoader) ListRosters(_ string) ([]domain.RosterRef, error) {
	return nil, nil
}

type fakeStore struct {
	saved int
	last  domain.RaceResult
	err   error
}

func (s *fakeStore) SaveRace(race domain.RaceResult) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved++
	s.last = race
	return "race-123", nil
}

var (
	_ ports.RosterLoader = (*fakeRosterLoader)(nil)
	_ ports.RaceStore    = (*fakeStore)(nil)
)

func half() domain.RandomSource {
	return domain.RandomFunc(func(_, _ float64) float64 { return 0.5 })
}

func spec(name string, speed float64) domain.HorseSpec {
	return domain.HorseSpec{Name: &name, Speed: speed}
}

func threeHorses() domain.Roster {
	return domain.Roster{
		Name:   "Derby",
		Horses: []domain.HorseSpec{spec("Slow", 1), spec("Fast", 3), spec("Mid", 2)},
	}
}

// --- Execute ---

func TestRunRace_RunsAllSteps(t *testing.T) {
	store := &fakeStore{}
	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, store)

	race, id, err := uc.Execute(context.Background(), "rosters/derby.yaml", RaceOptions{Steps: 10, Random: half(), Seed: 5})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if id != "race-123" || race.ID != "race-123" {
		t.Fatalf("expected saved id, got id=%q race.ID=%q", id, race.ID)
	}
	if race.Steps != 10 {
		t.Fatalf("expected 10 steps, got %d", race.Steps)
	}
	if race.Winner.Name != "Fast" || race.Winner.Distance != 15 {
		t.Fatalf("unexpected winner %+v", race.Winner)
	}
	if race.RosterName != "Derby" || race.RosterPath != "rosters/derby.yaml" || race.Seed != 5 {
		t.Fatalf("unexpected race metadata %+v", race)
	}

	wantOrder := []string{"Fast", "Mid", "Slow"}
	for i, name := range wantOrder {
		if race.Standings[i].Name != name || race.Standings[i].Place != i+1 {
			t.Fatalf("standing %d: expected %s, got %+v", i, name, race.Standings[i])
		}
	}

	if store.saved != 1 {
		t.Fatalf("expected one save, got %d", store.saved)
	}
	if store.last.Winner.Name != "Fast" {
		t.Fatalf("expected saved race to carry the winner")
	}
}

func TestRunRace_StopsAtFinish(t *testing.T) {
	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, nil)

	race, id, err := uc.Execute(context.Background(), "derby.yaml", RaceOptions{Steps: 100, Finish: 4, Random: half()})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if id != "" {
		t.Fatalf("expected no id without a store, got %q", id)
	}
	// Fast covers 1.5 per step: 4.5 after the third.
	if race.Steps != 3 {
		t.Fatalf("expected 3 steps, got %d", race.Steps)
	}
	if race.Winner.Distance < 4 {
		t.Fatalf("expected leader past the finish, got %v", race.Winner.Distance)
	}
}

func TestRunRace_DefaultSteps(t *testing.T) {
	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, nil)
	race, _, err := uc.Execute(context.Background(), "derby.yaml", RaceOptions{Random: half()})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if race.Steps != 100 {
		t.Fatalf("expected default 100 steps, got %d", race.Steps)
	}
}

func TestRunRace_HorsesNullAndEmpty(t *testing.T) {
	cases := []struct {
		horses []domain.HorseSpec
		msg    string
	}{
		{nil, domain.MsgHorsesNull},
		{[]domain.HorseSpec{}, domain.MsgHorsesEmpty},
	}
	for _, c := range cases {
		store := &fakeStore{}
		uc := NewRunRace(&fakeRosterLoader{roster: domain.Roster{Name: "Empty", Horses: c.horses}}, store)

		_, _, err := uc.Execute(context.Background(), "empty.yaml", RaceOptions{})
		if err == nil {
			t.Fatalf("expected error %q", c.msg)
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("expected %q in %v", c.msg, err)
		}
		if store.saved != 0 {
			t.Fatalf("expected nothing saved")
		}
	}
}

func TestRunRace_InvalidHorse(t *testing.T) {
	roster := domain.Roster{Name: "Bad", Horses: []domain.HorseSpec{spec("A", 1), {Speed: 1}}}
	uc := NewRunRace(&fakeRosterLoader{roster: roster}, nil)

	_, err := uc.Start("bad.yaml", RaceOptions{})
	if err == nil || !strings.Contains(err.Error(), domain.MsgNameNull) {
		t.Fatalf("expected %q, got %v", domain.MsgNameNull, err)
	}
	if !strings.Contains(err.Error(), "horse 1") {
		t.Fatalf("expected horse index in %v", err)
	}
}

func TestRunRace_LoaderErrorPropagates(t *testing.T) {
	loadErr := &domain.OpError{Op: "yamlroster.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	uc := NewRunRace(&fakeRosterLoader{err: loadErr}, nil)

	_, _, err := uc.Execute(context.Background(), "missing.yaml", RaceOptions{})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestRunRace_SaveError(t *testing.T) {
	saveErr := errors.New("disk full")
	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, &fakeStore{err: saveErr})

	race, id, err := uc.Execute(context.Background(), "derby.yaml", RaceOptions{Steps: 2, Random: half()})
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if id != "" {
		t.Fatalf("expected no id, got %q", id)
	}
	if race.Winner.Name != "Fast" || race.Steps != 2 {
		t.Fatalf("expected the finished race alongside the error, got %+v", race)
	}
}

func TestRunRace_StopsOnContextCancel(t *testing.T) {
	store := &fakeStore{}
	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	race, id, err := uc.Execute(ctx, "derby.yaml", RaceOptions{Steps: 10, Random: half()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if id != "" || store.saved != 0 {
		t.Fatalf("expected cancelled race not to be saved")
	}
	if race.Steps != 0 {
		t.Fatalf("expected 0 steps, got %d", race.Steps)
	}
	if race.StartedAt.IsZero() || race.EndedAt.IsZero() {
		t.Fatalf("expected timestamps set")
	}
}

func TestRunRace_ClockAndLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return t0.Add(time.Duration(tick) * time.Second)
	}

	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, &fakeStore{}, WithLogger(log), WithClock(clock))
	race, _, err := uc.Execute(context.Background(), "derby.yaml", RaceOptions{Steps: 2, Random: half()})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !race.StartedAt.Equal(t0.Add(time.Second)) {
		t.Fatalf("unexpected start %s", race.StartedAt)
	}
	if !race.EndedAt.After(race.StartedAt) {
		t.Fatalf("expected end after start: %s / %s", race.StartedAt, race.EndedAt)
	}

	out := buf.String()
	for _, want := range []string{"race.start", "race.step", "race.finish", "race.saved", `"winner":"Fast"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in logs, got:\n%s", want, out)
		}
	}
}

// --- RaceSession ---

func TestRaceSession_StepByStep(t *testing.T) {
	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, nil)

	s, err := uc.Start("derby.yaml", RaceOptions{Steps: 2, Random: half()})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if s.Done() || s.Step() != 0 || s.Steps() != 2 {
		t.Fatalf("expected a fresh race")
	}
	if s.RosterName() != "Derby" {
		t.Fatalf("unexpected roster %q", s.RosterName())
	}

	if done := s.Advance(); done {
		t.Fatalf("expected race to continue after step 1")
	}
	if done := s.Advance(); !done {
		t.Fatalf("expected race to be over after step 2")
	}

	before := s.Hippodrome().Winner().Distance()
	if done := s.Advance(); !done {
		t.Fatalf("expected race to stay over")
	}
	if s.Step() != 2 || s.Hippodrome().Winner().Distance() != before {
		t.Fatalf("expected no movement after the race is over")
	}

	res := s.Result()
	if res.Winner.Name != s.Hippodrome().Winner().Name() {
		t.Fatalf("expected result winner to match the hippodrome")
	}
	if res.Standings[0].Name != res.Winner.Name {
		t.Fatalf("expected first standing to be the winner")
	}
}

func TestRaceSession_NegativeFinishIgnored(t *testing.T) {
	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, nil)
	s, err := uc.Start("derby.yaml", RaceOptions{Steps: 1, Finish: -5})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if s.Finish() != 0 || s.Done() {
		t.Fatalf("expected finish disabled, got %v", s.Finish())
	}
}

func TestRunRace_SaveSessionResult(t *testing.T) {
	store := &fakeStore{}
	uc := NewRunRace(&fakeRosterLoader{roster: threeHorses()}, store)

	s, err := uc.Start("derby.yaml", RaceOptions{Steps: 1, Random: half()})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	s.Advance()

	race, id, err := uc.Save(s.Result())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if id != "race-123" || race.ID != id || store.saved != 1 {
		t.Fatalf("expected race saved once with id, got id=%q saved=%d", id, store.saved)
	}

	race, id, err = NewRunRace(&fakeRosterLoader{}, nil).Save(race)
	if err != nil || id != "" || race.Winner.Name != "Fast" {
		t.Fatalf("expected a no-op save without a store, got id=%q err=%v", id, err)
	}
}
