package randsrc

import (
	"math/rand/v2"
	"time"

	"github.com/neighborstan/hippodrome/internal/domain"
)

// Source is a PCG-backed domain.RandomSource. It is not safe for concurrent use;
// give each race its own Source.
type Source struct {
	seed uint64
	rng  *rand.Rand
}

// New returns a deterministic source for a non-zero seed. Seed 0 picks one from the clock.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

var _ domain.RandomSource = (*Source)(nil)

// Seed reports the seed actually in use, so a race can be replayed.
func (s *Source) Seed() uint64 { return s.seed }

func (s *Source) Between(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}
