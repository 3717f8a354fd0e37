// Package report renders simulation results for the console and as JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-craftsim/internal/craft"
	"github.com/litescript/ls-craftsim/internal/sim"
)

// Printer writes human-readable result lines and craft reports.
type Printer struct {
	w      io.Writer
	styled bool

	titleStyle lipgloss.Style
	okStyle    lipgloss.Style
	failStyle  lipgloss.Style
	modelStyle lipgloss.Style
	dimStyle   lipgloss.Style
}

// NewPrinter creates a printer. Styles are only applied when styled is true.
func NewPrinter(w io.Writer, styled bool) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		styled: styled,

		titleStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		okStyle:    r.NewStyle().Foreground(lipgloss.Color("46")),
		failStyle:  r.NewStyle().Foreground(lipgloss.Color("196")),
		modelStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		dimStyle:   r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// Header writes the run banner.
func (p *Printer) Header(runID string, seed uint64, crafts int) {
	title := fmt.Sprintf("Spacecraft subsystem simulation: %d craft(s)", crafts)
	fmt.Fprintln(p.w, p.render(p.titleStyle, title))
	fmt.Fprintln(p.w, p.render(p.dimStyle, fmt.Sprintf("run %s  seed %d", runID, seed)))
}

// Result writes a single "[MODEL] reason" line.
func (p *Printer) Result(c craft.Craft, r craft.Result) {
	reason := r.Reason
	if r.OK() {
		reason = p.render(p.okStyle, reason)
	} else {
		reason = p.render(p.failStyle, reason)
	}
	fmt.Fprintf(p.w, "[%s] %s\n", p.render(p.modelStyle, c.Model), reason)
}

// CraftReport writes the status block for a craft.
func (p *Printer) CraftReport(c craft.Craft) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.render(p.titleStyle, fmt.Sprintf("--- %s Spacecraft Report ---", c.Model)))
	fmt.Fprintf(p.w, "Status: %s\n", c.Status)
	fmt.Fprintf(p.w, "Altitude: %.0f miles\n", c.Altitude)
	fmt.Fprintf(p.w, "Payload: %.0f kg\n", c.PayloadMass)
	fmt.Fprintf(p.w, "Comms: %s\n", c.Comms)
	fmt.Fprintf(p.w, "Available Power: %.0f W\n", c.Power)
}

// Mission writes every result line for a report followed by its status block.
func (p *Printer) Mission(r sim.CraftReport) {
	fmt.Fprintln(p.w)
	for _, res := range r.Results {
		p.Result(r.Craft, res)
	}
	p.CraftReport(r.Craft)
}

// WriteSummaryTable writes a fixed-width table with one row per craft.
func WriteSummaryTable(w io.Writer, reports []sim.CraftReport, powerBand craft.Band) {
	fmt.Fprintln(w, strings.Repeat("─", 96))

	if len(reports) == 0 {
		fmt.Fprintln(w, "No crafts simulated")
		return
	}

	// Header
	fmt.Fprintf(w, "%-12s %-36s %8s %8s %-12s %7s %-15s %5s\n",
		"Craft", "Status", "Alt(mi)", "Load(kg)", "Comms", "Power", "Source", "Fails")
	fmt.Fprintln(w, strings.Repeat("─", 96))

	// Rows
	failures := 0
	for _, r := range reports {
		c := r.Craft
		fmt.Fprintf(w, "%-12s %-36s %8.0f %8.0f %-12s %7.0f %-15s %5d\n",
			truncateStr(c.Model, 12),
			truncateStr(c.Status, 36),
			c.Altitude,
			c.PayloadMass,
			c.Comms,
			c.Power,
			craft.ClassifyPower(c.Power, powerBand),
			r.Failures(),
		)
		failures += r.Failures()
	}

	fmt.Fprintf(w, "\nTotal: %d crafts, %d failed checks\n", len(reports), failures)
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
