package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-craftsim/internal/craft"
	"github.com/litescript/ls-craftsim/internal/logging"
	"github.com/litescript/ls-craftsim/internal/sim"
	"github.com/litescript/ls-craftsim/internal/state"
	"github.com/litescript/ls-craftsim/internal/ui"
	"github.com/litescript/ls-craftsim/internal/version"
)

// glossary backs the explain command. Numbers come from cfg so flag
// overrides show up in the explanations.
func glossary(cfg craft.Config) map[string]string {
	terms := make(map[string]string)
	terms["LEO"] = fmt.Sprintf("Low Earth Orbit band:\n"+
		"  The altitude window a craft may be moved into, %s miles.\n"+
		"  Targets outside it fail both the simple and the controlled altitude check with OutOfBounds.",
		cfg.LEO)
	terms["BATTERY"] = fmt.Sprintf("Nominal battery (NominalBattery):\n"+
		"  Available power inside the nominal band, %s W.\n"+
		"  Console label: %s.",
		cfg.Power, craft.SourceBattery.Label())
	terms["SOLAR"] = fmt.Sprintf("Emergency solar (EmergencySolar):\n"+
		"  Available power below %.0f W.\n"+
		"  The energy evaluation turns comms off and marks the craft 'Systems Disabled: Low Power'.\n"+
		"  Console label: %s.",
		cfg.Power.Min, craft.SourceSolar.Label())
	terms["ANOMALOUS"] = fmt.Sprintf("Anomalous reading:\n"+
		"  Available power above %.0f W, treated as a data fault.\n"+
		"  Console label: %s.",
		cfg.Power.Max, craft.SourceAnomalous.Label())
	terms["DISTURBANCE"] = fmt.Sprintf("Disturbance event:\n"+
		"  Drains %.0f W, floored at zero.\n"+
		"  Always runs last in the check sequence.",
		cfg.Disturbance.Cost)
	terms["COMPENSATION"] = fmt.Sprintf("Compensating system:\n"+
		"  Fires once per craft when a disturbance leaves power below %.0f W.\n"+
		"  Restores %.0f W; if power then reaches %.0f W, comms are switched back on.",
		cfg.Disturbance.CompensationThreshold, cfg.Disturbance.Restoration, cfg.Disturbance.CompensationThreshold)
	terms["EFFECTIVENESS"] = fmt.Sprintf("Control effectiveness:\n"+
		"  Torque times angular velocity of an attitude command.\n"+
		"  The controlled altitude manoeuvre needs at least %.0f to succeed.",
		cfg.MinControlEffectiveness)
	terms["CHECKS"] = "Check sequence:\n" +
		"  altitude, power, payload, comms, event.\n" +
		"  Every craft runs the same order; a failing check does not stop later ones."
	return terms
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Step through the check sequence interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("tui needs an interactive terminal; use 'ls-craftsim run' instead")
		}
		if numCrafts < 0 || numCrafts > maxCrafts {
			return fmt.Errorf("--crafts must be between 0 and %d, got %d", maxCrafts, numCrafts)
		}
		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		// Anything written to stderr would tear the alt screen
		mgr := state.NewManager(state.DefaultConfig())
		driver := sim.NewDriver(craft.NewController(cfg),
			sim.WithLogger(logging.Discard()),
			sim.WithObserver(mgr),
			sim.WithControlledAltitude(controlled),
		)
		missions := sim.Generate(sim.NewSource(resolveSeed()), numCrafts, sim.DefaultRanges())

		p := tea.NewProgram(ui.New(driver, missions, mgr), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <watts>",
	Short: "Classify an available power reading against the nominal band",
	Example: `  ls-craftsim classify 450
  ls-craftsim classify 1200 --power-max 1500`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watts, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid power reading %q: %w", args[0], err)
		}
		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		src := craft.ClassifyPower(watts, cfg.Power)
		fmt.Fprintf(cmd.OutOrStdout(), "%.0f W (band %s W): %s\n  %s\n", watts, cfg.Power, src, src.Label())
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <term>",
	Short: "Explain a term used in simulation output",
	Example: `  ls-craftsim explain compensation
  ls-craftsim explain leo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig()
		if err != nil {
			return err
		}
		terms := glossary(cfg)

		key := strings.ToUpper(args[0])
		if text, ok := terms[key]; ok {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}

		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Unknown term: %s\nKnown terms:\n", args[0])
		known := make([]string, 0, len(terms))
		for k := range terms {
			known = append(known, strings.ToLower(k))
		}
		sort.Strings(known)
		for _, t := range known {
			fmt.Fprintf(errOut, "  - %s\n", t)
		}
		return fmt.Errorf("no explanation for %q", args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ls-craftsim v%s\n", version.Version)
	},
}
