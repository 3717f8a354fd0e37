// Command ls-craftsim simulates spacecraft subsystem checks and prints their outcomes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-craftsim/internal/craft"
	"github.com/litescript/ls-craftsim/internal/logging"
	"github.com/litescript/ls-craftsim/internal/observability"
	"github.com/litescript/ls-craftsim/internal/report"
	"github.com/litescript/ls-craftsim/internal/sim"
)

// CLI flags shared by every command
var (
	numCrafts      int
	seed           uint64
	controlled     bool
	logLevel       string
	noColor        bool
	outputFormat   string
	showMetrics    bool
	traceEnabled   bool
	powerMin       float64
	powerMax       float64
	disturbCost    float64
	compThreshold  float64
	restoration    float64
	deductAltitude bool
	deductPayload  bool
)

const maxCrafts = 1000

var rootCmd = &cobra.Command{
	Use:   "ls-craftsim",
	Short: "Simulate spacecraft subsystem checks",
	Long: `ls-craftsim builds a handful of spacecraft with randomized attributes and runs
each one through the altitude, power, payload, comms and disturbance checks in
order, printing what happened.

Examples:
  ls-craftsim --crafts 3 --seed 42
  ls-craftsim --output json --controlled
  ls-craftsim tui --seed 7`,
	SilenceUsage: true,
	RunE:         runSimulation,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation once and print results (default command)",
	RunE:  runSimulation,
}

func init() {
	pf := rootCmd.PersistentFlags()
	defaults := craft.DefaultConfig()

	pf.IntVarP(&numCrafts, "crafts", "n", 5, "Number of crafts to simulate")
	pf.Uint64Var(&seed, "seed", 0, "Random seed (0 derives one from the clock)")
	pf.BoolVar(&controlled, "controlled", false, "Use the torque-controlled altitude manoeuvre")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.BoolVar(&noColor, "no-color", false, "Disable styled output")
	pf.StringVarP(&outputFormat, "output", "o", "text", "Output format: text, table, or json")
	pf.BoolVar(&showMetrics, "metrics", false, "Print outcome counters after the run")
	pf.BoolVar(&traceEnabled, "trace", false, "Write spans for every craft and check to stderr")

	pf.Float64Var(&powerMin, "power-min", defaults.Power.Min, "Lower bound of the nominal battery band (W)")
	pf.Float64Var(&powerMax, "power-max", defaults.Power.Max, "Upper bound of the nominal battery band (W)")
	pf.Float64Var(&disturbCost, "disturbance-cost", defaults.Disturbance.Cost, "Power lost to a disturbance (W)")
	pf.Float64Var(&compThreshold, "compensation-threshold", defaults.Disturbance.CompensationThreshold, "Power below which the compensating system fires (W)")
	pf.Float64Var(&restoration, "restoration", defaults.Disturbance.Restoration, "Power restored by the compensating system (W)")
	pf.BoolVar(&deductAltitude, "deduct-altitude", defaults.Altitude.DeductOnSuccess, "Draw power on a successful simple altitude adjustment")
	pf.BoolVar(&deductPayload, "deduct-payload", defaults.PayloadOps.DeductOnSuccess, "Draw power on successful payload operation")

	rootCmd.AddCommand(runCmd, tuiCmd, classifyCmd, explainCmd, versionCmd)
}

// buildConfig applies flag overrides to the default thresholds.
func buildConfig() (craft.Config, error) {
	cfg := craft.DefaultConfig()
	cfg.Power = craft.Band{Min: powerMin, Max: powerMax}
	cfg.Disturbance = craft.DisturbanceConfig{
		Cost:                  disturbCost,
		CompensationThreshold: compThreshold,
		Restoration:           restoration,
	}
	cfg.Altitude.DeductOnSuccess = deductAltitude
	cfg.PayloadOps.DeductOnSuccess = deductPayload

	if err := cfg.Validate(); err != nil {
		return craft.Config{}, fmt.Errorf("invalid thresholds: %w", err)
	}
	return cfg, nil
}

func resolveSeed() uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if numCrafts < 0 || numCrafts > maxCrafts {
		return fmt.Errorf("--crafts must be between 0 and %d, got %d", maxCrafts, numCrafts)
	}
	format := strings.ToLower(outputFormat)
	switch format {
	case "text", "table", "json":
	default:
		return fmt.Errorf("unknown output format %q: use text, table, or json", outputFormat)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger := logging.New(logging.ParseLevel(logLevel))

	ctx, cancel := signalContext()
	defer cancel()

	tracingCfg := observability.DefaultTracingConfig()
	tracingCfg.Enabled = traceEnabled
	shutdown, err := observability.InitTracing(ctx, tracingCfg, os.Stderr, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, logger)

	collector, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	runSeed := resolveSeed()
	runID := uuid.New()
	logger.Info("starting run %s: crafts=%d seed=%d controlled=%t", runID, numCrafts, runSeed, controlled)

	driver := sim.NewDriver(craft.NewController(cfg),
		sim.WithLogger(logger),
		sim.WithObserver(collector),
		sim.WithControlledAltitude(controlled),
	)
	missions := sim.Generate(sim.NewSource(runSeed), numCrafts, sim.DefaultRanges())
	reports := driver.Run(ctx, missions)

	out := cmd.OutOrStdout()
	metricsOut := out
	switch format {
	case "json":
		export := report.ExportRun(runID, runSeed, time.Now(), cfg, reports)
		if err := export.WriteJSON(out); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		// Keep stdout parseable
		metricsOut = cmd.ErrOrStderr()
	case "table":
		report.WriteSummaryTable(out, reports, cfg.Power)
	default:
		styled := !noColor && out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
		p := report.NewPrinter(out, styled)
		p.Header(runID.String(), runSeed, len(missions))
		for _, r := range reports {
			p.Mission(r)
		}
		fmt.Fprintln(out)
		report.WriteSummaryTable(out, reports, cfg.Power)
	}

	if showMetrics {
		fmt.Fprintln(metricsOut)
		if err := collector.WriteText(metricsOut); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
