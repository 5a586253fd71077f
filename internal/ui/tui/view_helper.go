package tui

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/neighborstan/hippodrome/internal/domain"
)

const nameWidth = 14

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen-1 {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// trackScale is the distance a full bar stands for: the finish line when
// one is set, otherwise the current leader.
func trackScale(finish float64, horses []*domain.Horse) float64 {
	if finish > 0 {
		return finish
	}
	best := 0.0
	for _, h := range horses {
		if d := h.Distance(); d > best && !math.IsInf(d, 1) {
			best = d
		}
	}
	if best <= 0 {
		return 1
	}
	return best
}

func percent(distance, scale float64) float64 {
	switch {
	case math.IsNaN(distance) || scale <= 0 || distance <= 0:
		return 0
	case math.IsInf(distance, 1):
		return 1
	}
	p := distance / scale
	if p > 1 {
		return 1
	}
	return p
}

func barWidth(termWidth int) int {
	w := termWidth - nameWidth - 16
	switch {
	case w < 10:
		return 10
	case w > 80:
		return 80
	}
	return w
}
