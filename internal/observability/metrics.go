// Package observability wires Prometheus counters and OpenTelemetry tracing
// around the simulation.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/litescript/ls-craftsim/internal/craft"
)

// Collector exposes check outcomes as Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	CheckResults  *prometheus.CounterVec
	Compensations prometheus.Counter
	Power         *prometheus.GaugeVec
}

// NewCollector registers the simulation metrics with reg. A nil reg falls
// back to the default registerer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "craftsim",
		Name:      "check_results_total",
		Help:      "Subsystem check results by check and outcome kind.",
	}, []string{"check", "kind"})
	results, err := registerCounterVec(reg, results, "craftsim_check_results_total")
	if err != nil {
		return nil, err
	}

	compensations := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "craftsim",
		Name:      "compensations_total",
		Help:      "Times the compensating system restored power.",
	})
	compensations, err = registerCounter(reg, compensations, "craftsim_compensations_total")
	if err != nil {
		return nil, err
	}

	power := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "craftsim",
		Name:      "available_power_watts",
		Help:      "Available power per craft after the most recent check.",
	}, []string{"craft"})
	power, err = registerGaugeVec(reg, power, "craftsim_available_power_watts")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		CheckResults:  results,
		Compensations: compensations,
		Power:         power,
	}, nil
}

// Observe records a result. It satisfies sim.Observer.
func (c *Collector) Observe(cr craft.Craft, r craft.Result) {
	if c == nil {
		return
	}
	c.CheckResults.WithLabelValues(string(r.Check), string(r.Kind)).Inc()
	if r.Kind == craft.KindCompensated {
		c.Compensations.Inc()
	}
	c.Power.WithLabelValues(cr.Model).Set(cr.Power)
}

// WriteText renders the craftsim metric families as plain name{labels} value lines.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "craftsim_") {
			continue
		}
		fmt.Fprintf(w, "# HELP %s %s\n", mf.GetName(), mf.GetHelp())
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), formatLabels(m.GetLabel()), metricValue(mf.GetType(), m))
		}
	}
	return nil
}

func metricValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	default:
		return 0
	}
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
