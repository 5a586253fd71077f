package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/usecase"
)

type phase int

const (
	phaseRunning phase = iota
	phasePaused
	phaseFinished
	phaseFailed
)

// Outcome is what the race view leaves behind once the program exits.
type Outcome struct {
	Race     domain.RaceResult
	ID       string
	Finished bool
	Err      error
}

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	session *usecase.RaceSession
	bar     progress.Model
	tick    time.Duration
	tickSeq int

	phase   phase
	result  domain.RaceResult
	savedID string
	saving  bool
	err     error
	toast   string
}

// Run starts the race and shows it until the user quits.
// A roster that cannot be raced is reported before the screen opens.
func Run(deps Deps) (Outcome, error) {
	m := newModel(deps)
	if m.phase == phaseFailed {
		return Outcome{Err: m.err}, m.err
	}

	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Outcome{}, err
	}

	sm, ok := final.(safeModel)
	if !ok {
		return Outcome{}, nil
	}
	return sm.m.outcome(), nil
}

func newModel(deps Deps) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	tick := deps.Tick
	if tick <= 0 {
		tick = domain.DefaultConfig().Race.Tick
	}

	m := model{
		theme: DefaultTheme(),
		deps:  deps,
		log:   log,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
		tick:  tick,
		phase: phaseRunning,
	}

	if deps.Race == nil {
		m.phase = phaseFailed
		m.err = fmt.Errorf("race view: no race configured")
		return m
	}

	s, err := deps.Race.Start(deps.RosterPath, deps.Options)
	if err != nil {
		m.phase = phaseFailed
		m.err = err
		return m
	}
	m.session = s

	if s.Done() {
		m.finish()
	}
	return m
}

func (m model) Init() tea.Cmd {
	switch m.phase {
	case phaseRunning:
		return cmdTick(m.tick, m.tickSeq)
	case phaseFinished:
		return m.saveCmd()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = barWidth(msg.Width)
		return m, nil

	case tickMsg:
		if m.phase != phaseRunning || msg.seq != m.tickSeq {
			return m, nil
		}
		if m.session.Advance() {
			m.finish()
			return m, m.saveCmd()
		}
		return m, cmdTick(m.tick, m.tickSeq)

	case raceSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.log.Error("tui.race.save.failed", "err", msg.err)
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.result = msg.race
		m.savedID = msg.id
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case " ", "p":
			switch m.phase {
			case phaseRunning:
				m.phase = phasePaused
				return m, nil
			case phasePaused:
				m.phase = phaseRunning
				m.tickSeq++
				return m, cmdTick(m.tick, m.tickSeq)
			}

		case "s":
			if m.phase == phaseRunning || m.phase == phasePaused {
				for !m.session.Advance() {
				}
				m.finish()
				return m, m.saveCmd()
			}
		}
	}

	return m, nil
}

func (m *model) finish() {
	m.phase = phaseFinished
	m.result = m.session.Result()
	m.saving = m.deps.Race != nil
	m.log.Info("tui.race.finish",
		"roster", m.result.RosterName,
		"steps", m.result.Steps,
		"winner", m.result.Winner.Name,
	)
}

func (m model) saveCmd() tea.Cmd {
	if m.deps.Race == nil {
		return nil
	}
	return cmdSaveRace(m.deps.Race, m.result)
}

func (m model) outcome() Outcome {
	return Outcome{
		Race:     m.result,
		ID:       m.savedID,
		Finished: m.phase == phaseFinished,
		Err:      m.err,
	}
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	if m.phase == phaseFailed {
		card := m.theme.Card.Render(
			m.theme.Title.Render("Race stopped") + "\n\n" +
				userMessage(m.err) + "\n\n" +
				m.theme.Help.Render("q quit"),
		)
		return wrap.Render(card)
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Hippodrome"))
	b.WriteString("\n")
	status := fmt.Sprintf("%s · step %d/%d", m.session.RosterName(), m.session.Step(), m.session.Steps())
	if f := m.session.Finish(); f > 0 {
		status += fmt.Sprintf(" · finish %.0f", f)
	}
	b.WriteString(m.theme.Subtitle.Render(status))
	b.WriteString("\n\n")

	horses := m.session.Hippodrome().Horses()
	leader := m.session.Hippodrome().Winner()
	scale := trackScale(m.session.Finish(), horses)

	var track strings.Builder
	for i, h := range horses {
		name := padRight(clampString(h.Name(), nameWidth), nameWidth)
		if h == leader {
			name = m.theme.Leader.Render(name)
		}
		track.WriteString(name)
		track.WriteString(" ")
		track.WriteString(m.bar.ViewAs(percent(h.Distance(), scale)))
		track.WriteString(fmt.Sprintf(" %7.1f", h.Distance()))
		if i < len(horses)-1 {
			track.WriteString("\n")
		}
	}
	b.WriteString(m.theme.Card.Render(track.String()))
	b.WriteString("\n")

	switch m.phase {
	case phaseRunning:
		b.WriteString(m.theme.Help.Render("space pause • s skip to end • q quit"))
	case phasePaused:
		b.WriteString(m.theme.Help.Render("paused • space resume • s skip to end • q quit"))
	case phaseFinished:
		b.WriteString(m.theme.Winner.Render(fmt.Sprintf("Winner is %s!", m.result.Winner.Name)))
		b.WriteString("\n")
		switch {
		case m.saving:
			b.WriteString(m.theme.Help.Render("saving race…"))
		case m.savedID != "":
			b.WriteString(m.theme.Help.Render("saved as " + m.savedID))
		}
		b.WriteString("\n")
		b.WriteString(m.theme.Help.Render("q quit"))
	}

	if m.toast != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Toast.Render(m.toast))
	}

	return wrap.Render(b.String())
}
