// Package ui provides an interactive stepper over the check sequence using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-craftsim/internal/craft"
	"github.com/litescript/ls-craftsim/internal/sim"
	"github.com/litescript/ls-craftsim/internal/state"
	"github.com/litescript/ls-craftsim/internal/version"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("69")).
			Padding(0, 1)

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// eventLines is how many recent events the log panel shows.
const eventLines = 8

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	driver   *sim.Driver
	missions []sim.Mission
	state    *state.Manager

	// Progress
	craftIdx int
	stepIdx  int
	results  [][]craft.Result // per craft, in sequence order
	done     bool

	keys  keyMap
	help  help.Model
	width int
}

// New creates the stepper. The driver should report to mgr so the event log
// stays current.
func New(driver *sim.Driver, missions []sim.Mission, mgr *state.Manager) Model {
	for _, m := range missions {
		mgr.Track(m.Craft.Clone())
	}
	return Model{
		driver:   driver,
		missions: missions,
		state:    mgr,
		results:  make([][]craft.Result, len(missions)),
		done:     len(missions) == 0,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Step):
			m = m.advance()
		case key.Matches(msg, m.keys.RunCraft):
			craftIdx := m.craftIdx
			for !m.done && m.craftIdx == craftIdx {
				m = m.advance()
			}
		case key.Matches(msg, m.keys.RunAll):
			for !m.done {
				m = m.advance()
			}
		}
	}
	return m, nil
}

// advance runs the next check in the sequence.
func (m Model) advance() Model {
	if m.done {
		return m
	}

	mission := m.missions[m.craftIdx]
	res := m.driver.Step(context.Background(), mission, sim.Sequence[m.stepIdx])

	results := make([][]craft.Result, len(m.results))
	copy(results, m.results)
	results[m.craftIdx] = append(append([]craft.Result(nil), m.results[m.craftIdx]...), res)
	m.results = results

	m.stepIdx++
	if m.stepIdx == len(sim.Sequence) {
		m.stepIdx = 0
		m.craftIdx++
		if m.craftIdx == len(m.missions) {
			m.done = true
			m.craftIdx = len(m.missions) - 1
			m.stepIdx = len(sim.Sequence)
		}
	}
	return m
}

// Done reports whether every craft has run the full sequence.
func (m Model) Done() bool {
	return m.done
}

// CurrentCraft returns the index of the craft being processed.
func (m Model) CurrentCraft() int {
	return m.craftIdx
}

// CurrentStep returns the step that will run next.
func (m Model) CurrentStep() sim.Step {
	if m.stepIdx >= len(sim.Sequence) {
		return sim.StepEvent
	}
	return sim.Sequence[m.stepIdx]
}

// Results returns the results recorded so far for craft i.
func (m Model) Results(i int) []craft.Result {
	if i < 0 || i >= len(m.results) {
		return nil
	}
	return m.results[i]
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("ls-craftsim v%s", version.Version)))
	b.WriteString("\n\n")

	if len(m.missions) == 0 {
		b.WriteString("No crafts to simulate.\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	mission := m.missions[m.craftIdx]
	b.WriteString(fmt.Sprintf("Craft %d of %d\n", m.craftIdx+1, len(m.missions)))
	b.WriteString(cardStyle.Render(m.renderCard(mission.Craft)))
	b.WriteString("\n\n")
	b.WriteString(m.renderSteps())
	b.WriteString("\n")
	b.WriteString(m.renderEvents())
	b.WriteString("\n")

	if m.done {
		b.WriteString(okStyle.Render("All crafts processed."))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderCard(c *craft.Craft) string {
	lines := []string{
		fmt.Sprintf("--- %s Spacecraft Report ---", c.Model),
		fmt.Sprintf("Status: %s", c.Status),
		fmt.Sprintf("Altitude: %.0f miles", c.Altitude),
		fmt.Sprintf("Payload: %.0f kg", c.PayloadMass),
		fmt.Sprintf("Comms: %s", c.Comms),
		fmt.Sprintf("Available Power: %.0f W", c.Power),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSteps() string {
	var b strings.Builder
	results := m.results[m.craftIdx]
	for i, s := range sim.Sequence {
		switch {
		case i < len(results):
			res := results[i]
			style, mark := okStyle, "✓"
			if !res.OK() {
				style, mark = failStyle, "✗"
			}
			b.WriteString(style.Render(fmt.Sprintf(" %s %-8s %s", mark, s, res.Reason)))
		case i == m.stepIdx && !m.done:
			b.WriteString(currentStyle.Render(fmt.Sprintf(" ▶ %-8s", s)))
		default:
			b.WriteString(pendingStyle.Render(fmt.Sprintf("   %-8s", s)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEvents() string {
	events := m.state.RecentEvents(eventLines)
	if len(events) == 0 {
		return pendingStyle.Render("No checks run yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Event log"))
	b.WriteString("\n")
	for _, e := range events {
		line := fmt.Sprintf("%s [%s] %-11s %s", e.Timestamp.Format("15:04:05"), e.Craft, e.Check, e.Kind)
		if e.OK {
			b.WriteString(okStyle.Render(line))
		} else {
			b.WriteString(failStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
