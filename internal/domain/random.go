package domain

import "math/rand/v2"

// Bounds of the per-step draw used by Horse.Move.
const (
	RandomMin = 0.2
	RandomMax = 0.9
)

// RandomSource draws a float64 from the half-open interval [min, max).
type RandomSource interface {
	Between(min, max float64) float64
}

// RandomFunc adapts a plain function to RandomSource.
type RandomFunc func(min, max float64) float64

func (f RandomFunc) Between(min, max float64) float64 {
	return f(min, max)
}

// DefaultRandom draws from the process-wide math/rand/v2 generator.
// It is safe for concurrent use.
var DefaultRandom RandomSource = RandomFunc(func(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
})
