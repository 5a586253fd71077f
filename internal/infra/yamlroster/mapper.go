package yamlroster

import (
	"fmt"
	"math"
	"strings"

	"github.com/neighborstan/hippodrome/internal/domain"
)

type yamlRoster struct {
	Name   string      `yaml:"name"`
	Horses []yamlHorse `yaml:"horses"`
}

// Pointers keep "absent" apart from the zero value.
type yamlHorse struct {
	Name     *string  `yaml:"name"`
	Speed    *float64 `yaml:"speed"`
	Distance *float64 `yaml:"distance"`
}

// mapAndValidate converts the file into a domain.Roster and builds every horse
// once so bad entries are reported with their index. A missing horses key stays
// nil; the hippodrome decides whether nil or empty is acceptable.
func mapAndValidate(path string, yr yamlRoster) (domain.Roster, error) {
	name := strings.TrimSpace(yr.Name)
	if name == "" {
		name = baseName(path)
	}

	roster := domain.Roster{Name: name}
	if yr.Horses == nil {
		return roster, nil
	}

	roster.Horses = make([]domain.HorseSpec, 0, len(yr.Horses))
	for i, yh := range yr.Horses {
		field := fmt.Sprintf("horses[%d]", i)
		if yh.Speed == nil {
			return domain.Roster{}, invalidField(path, field+".speed", fmt.Errorf("speed is required: %w", domain.ErrInvalidConfig))
		}

		if !finite(*yh.Speed) {
			return domain.Roster{}, invalidField(path, field+".speed", fmt.Errorf("speed must be a finite number: %w", domain.ErrInvalidConfig))
		}
		if yh.Distance != nil && !finite(*yh.Distance) {
			return domain.Roster{}, invalidField(path, field+".distance", fmt.Errorf("distance must be a finite number: %w", domain.ErrInvalidConfig))
		}

		spec := domain.HorseSpec{
			Name:     yh.Name,
			Speed:    *yh.Speed,
			Distance: yh.Distance,
		}
		if _, err := spec.Build(); err != nil {
			return domain.Roster{}, invalidField(path, field, err)
		}

		roster.Horses = append(roster.Horses, spec)
	}

	return roster, nil
}

func invalidField(path, field string, err error) error {
	return &domain.OpError{
		Op:   "yamlroster.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %w", field, err),
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
