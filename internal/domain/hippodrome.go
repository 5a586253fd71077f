package domain

// Hippodrome is a race over an ordered set of horses.
//
// The slice passed to NewHippodrome is retained, not copied: changes made
// through either reference are visible through the other.
type Hippodrome struct {
	horses []*Horse
}

func NewHippodrome(horses []*Horse) (*Hippodrome, error) {
	if horses == nil {
		return nil, invalidArgument(MsgHorsesNull)
	}
	if len(horses) == 0 {
		return nil, invalidArgument(MsgHorsesEmpty)
	}
	return &Hippodrome{horses: horses}, nil
}

// Horses returns the slice given at construction.
func (h *Hippodrome) Horses() []*Horse {
	return h.horses
}

// Move moves every horse once, in order.
func (h *Hippodrome) Move() {
	for _, horse := range h.horses {
		horse.Move()
	}
}

// Winner returns the horse with the greatest distance. On a tie the earliest
// horse in order wins.
func (h *Hippodrome) Winner() *Horse {
	var winner *Horse
	for _, horse := range h.horses {
		if winner == nil || horse.Distance() > winner.Distance() {
			winner = horse
		}
	}
	return winner
}
