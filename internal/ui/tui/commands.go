package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/usecase"
)

func cmdTick(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func cmdSaveRace(uc *usecase.RunRace, race domain.RaceResult) tea.Cmd {
	return func() tea.Msg {
		saved, id, err := uc.Save(race)
		return raceSavedMsg{race: saved, id: id, err: err}
	}
}
