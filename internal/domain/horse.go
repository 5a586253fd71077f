package domain

import "strings"

// Horse is a race entrant. Name and speed are fixed at construction;
// distance only grows through Move.
type Horse struct {
	name     string
	speed    float64
	distance float64
	random   RandomSource
}

// HorseOption customizes a Horse at construction.
type HorseOption func(*horseSettings)

type horseSettings struct {
	distance float64
	random   RandomSource
}

// WithDistance sets the starting distance (default 0).
func WithDistance(d float64) HorseOption {
	return func(s *horseSettings) { s.distance = d }
}

// WithRandom replaces the source Move draws from.
func WithRandom(src RandomSource) HorseOption {
	return func(s *horseSettings) {
		if src != nil {
			s.random = src
		}
	}
}

// HorseSpec is the nullable form of a horse as read from an external source.
// A nil Name is rejected; a nil Distance means 0.
type HorseSpec struct {
	Name     *string
	Speed    float64
	Distance *float64
}

// Build validates the entry and constructs the horse. A Distance set here
// takes precedence over a WithDistance option.
func (s HorseSpec) Build(opts ...HorseOption) (*Horse, error) {
	if s.Name == nil {
		return nil, invalidArgument(MsgNameNull)
	}
	if s.Distance != nil {
		opts = append(opts[:len(opts):len(opts)], WithDistance(*s.Distance))
	}
	return NewHorse(*s.Name, s.Speed, opts...)
}

// NewHorse validates its arguments in order (name, speed, distance) and
// returns the first violation as an invalid-argument DomainError.
func NewHorse(name string, speed float64, opts ...HorseOption) (*Horse, error) {
	settings := horseSettings{random: DefaultRandom}
	for _, opt := range opts {
		opt(&settings)
	}

	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument(MsgNameBlank)
	}
	if speed < 0 {
		return nil, invalidArgument(MsgSpeedNegative)
	}
	if settings.distance < 0 {
		return nil, invalidArgument(MsgDistanceNegative)
	}

	return &Horse{
		name:     name,
		speed:    speed,
		distance: settings.distance,
		random:   settings.random,
	}, nil
}

func (h *Horse) Name() string { return h.name }

func (h *Horse) Speed() float64 { return h.speed }

func (h *Horse) Distance() float64 { return h.distance }

// Move advances the horse by speed times one draw from [RandomMin, RandomMax).
// A zero Horse draws from DefaultRandom.
func (h *Horse) Move() {
	random := h.random
	if random == nil {
		random = DefaultRandom
	}
	h.distance += h.speed * random.Between(RandomMin, RandomMax)
}
