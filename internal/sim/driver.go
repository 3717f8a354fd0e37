package sim

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/litescript/ls-craftsim/internal/craft"
	"github.com/litescript/ls-craftsim/internal/logging"
)

// TracerName is the instrumentation name used for driver spans.
const TracerName = "github.com/litescript/ls-craftsim/internal/sim"

// Step is one stage of the check sequence.
type Step int

const (
	StepAltitude Step = iota
	StepPower
	StepPayload
	StepComms
	StepEvent
)

// Sequence is the fixed order every craft is processed in.
var Sequence = []Step{StepAltitude, StepPower, StepPayload, StepComms, StepEvent}

func (s Step) String() string {
	switch s {
	case StepAltitude:
		return "altitude"
	case StepPower:
		return "power"
	case StepPayload:
		return "payload"
	case StepComms:
		return "comms"
	case StepEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Observer receives every result the driver produces, with a snapshot of the
// craft taken right after the check ran.
type Observer interface {
	Observe(c craft.Craft, r craft.Result)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(c craft.Craft, r craft.Result)

// Observe implements Observer.
func (f ObserverFunc) Observe(c craft.Craft, r craft.Result) {
	f(c, r)
}

// CraftReport is the outcome of running the full sequence on one craft.
type CraftReport struct {
	Craft   craft.Craft // final state
	Command craft.AttitudeCommand
	Results []craft.Result
}

// Failures counts the failed results in the report.
func (r CraftReport) Failures() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Driver runs the check sequence one craft at a time. It is not safe for
// concurrent use.
type Driver struct {
	ctl        *craft.Controller
	log        *logging.Logger
	observers  []Observer
	controlled bool
	tracer     trace.Tracer
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the driver's logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// WithObserver registers an observer. May be given more than once.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		d.observers = append(d.observers, o)
	}
}

// WithControlledAltitude switches the altitude step to the torque-controlled
// manoeuvre.
func WithControlledAltitude(enabled bool) Option {
	return func(d *Driver) {
		d.controlled = enabled
	}
}

// WithTracer sets the tracer used for mission and step spans.
func WithTracer(t trace.Tracer) Option {
	return func(d *Driver) {
		d.tracer = t
	}
}

// NewDriver creates a driver around ctl.
func NewDriver(ctl *craft.Controller, opts ...Option) *Driver {
	d := &Driver{ctl: ctl}

	for _, opt := range opts {
		opt(d)
	}

	if d.log == nil {
		d.log = logging.Discard()
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(TracerName)
	}
	return d
}

// Step runs a single stage of the sequence against the mission's craft.
func (d *Driver) Step(ctx context.Context, m Mission, s Step) craft.Result {
	_, span := d.tracer.Start(ctx, "craft.step", trace.WithAttributes(
		attribute.String("craft.model", m.Craft.Model),
		attribute.String("step", s.String()),
	))
	defer span.End()

	var res craft.Result
	switch s {
	case StepAltitude:
		if d.controlled {
			res = d.ctl.ControlAltitude(m.Craft, m.Command)
		} else {
			res = d.ctl.AdjustAltitude(m.Craft, m.Command.Target)
		}
	case StepPower:
		res = d.ctl.EvaluateEnergy(m.Craft)
	case StepPayload:
		res = d.ctl.OperatePayload(m.Craft)
	case StepComms:
		res = d.ctl.SendData(m.Craft)
	case StepEvent:
		res = d.ctl.InjectDisturbance(m.Craft)
	default:
		panic(fmt.Sprintf("sim: unknown step %d", int(s)))
	}

	span.SetAttributes(
		attribute.String("result.kind", string(res.Kind)),
		attribute.Float64("power.before", res.PowerBefore),
		attribute.Float64("power.after", res.PowerAfter),
	)
	if err := res.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	if d.log.Enabled(logging.LevelDebug) {
		d.log.With("craft", m.Craft.Model).With("step", s).Debug("%s: %s", res.Kind, res.Reason)
	}

	snap := m.Craft.Clone()
	for _, o := range d.observers {
		o.Observe(snap, res)
	}
	return res
}

// RunMission runs the whole sequence on one craft.
func (d *Driver) RunMission(ctx context.Context, m Mission) CraftReport {
	ctx, span := d.tracer.Start(ctx, "craft.mission", trace.WithAttributes(
		attribute.String("craft.model", m.Craft.Model),
	))
	defer span.End()

	report := CraftReport{
		Command: m.Command,
		Results: make([]craft.Result, 0, len(Sequence)),
	}
	for _, s := range Sequence {
		report.Results = append(report.Results, d.Step(ctx, m, s))
	}
	report.Craft = m.Craft.Clone()

	span.SetAttributes(
		attribute.String("craft.status", report.Craft.Status),
		attribute.Int("craft.failures", report.Failures()),
	)
	d.log.With("craft", m.Craft.Model).Info("mission complete: status=%q failures=%d",
		report.Craft.Status, report.Failures())
	return report
}

// Run processes the missions in order, one craft start to finish before the
// next. It stops between crafts if ctx is cancelled.
func (d *Driver) Run(ctx context.Context, missions []Mission) []CraftReport {
	reports := make([]CraftReport, 0, len(missions))
	for _, m := range missions {
		if ctx.Err() != nil {
			d.log.Warn("run cancelled after %d of %d crafts", len(reports), len(missions))
			break
		}
		reports = append(reports, d.RunMission(ctx, m))
	}
	return reports
}
