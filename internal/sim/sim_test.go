package sim

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/litescript/ls-craftsim/internal/craft"
	"github.com/litescript/ls-craftsim/internal/logging"
)

// scriptSource returns scripted values in order, ignoring the requested range.
type scriptSource struct {
	vals []int
	i    int
}

func (s *scriptSource) IntBetween(lo, hi int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestNewSource_Range(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 1000; i++ {
		v := src.IntBetween(3, 9)
		if v < 3 || v > 9 {
			t.Fatalf("IntBetween(3, 9) = %d", v)
		}
	}

	// Swapped bounds are tolerated
	if v := src.IntBetween(5, 5); v != 5 {
		t.Errorf("IntBetween(5, 5) = %d", v)
	}
	if v := src.IntBetween(9, 3); v < 3 || v > 9 {
		t.Errorf("IntBetween(9, 3) = %d", v)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(NewSource(42), 6, DefaultRanges())
	b := Generate(NewSource(42), 6, DefaultRanges())

	if len(a) != 6 || len(b) != 6 {
		t.Fatalf("lengths = %d, %d, want 6", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(*a[i].Craft, *b[i].Craft) || a[i].Command != b[i].Command {
			t.Errorf("mission %d differs for same seed", i)
		}
	}
}

func TestGenerate_Scripted(t *testing.T) {
	// altitude, payload, comms, power, target, torque, angular velocity
	src := &scriptSource{vals: []int{300, 2000, 1, 900, 500, 4, 3}}
	missions := Generate(src, 1, DefaultRanges())

	c := missions[0].Craft
	if c.Model != "Aquila" {
		t.Errorf("Model = %q, want Aquila", c.Model)
	}
	if c.Altitude != 300 || c.PayloadMass != 2000 || c.Power != 900 {
		t.Errorf("craft = %+v", *c)
	}
	if c.Comms != craft.CommsNotWorking {
		t.Errorf("Comms = %v, want Not working", c.Comms)
	}
	want := craft.AttitudeCommand{Target: 500, Torque: 4, AngularVelocity: 3}
	if missions[0].Command != want {
		t.Errorf("Command = %+v, want %+v", missions[0].Command, want)
	}
}

func TestModelName(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "Aquila"},
		{7, "Lyra"},
		{8, "Aquila-2"},
		{17, "Borealis-3"},
	}
	for _, tt := range tests {
		if got := ModelName(tt.i); got != tt.want {
			t.Errorf("ModelName(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestDriver_RunMissionOrder(t *testing.T) {
	var seen []craft.Check
	obs := ObserverFunc(func(c craft.Craft, r craft.Result) {
		seen = append(seen, r.Check)
	})

	d := NewDriver(craft.NewController(craft.DefaultConfig()), WithObserver(obs))
	m := Mission{
		Craft:   craft.New("Test", 400, 5000, craft.CommsWorking, 1000),
		Command: craft.AttitudeCommand{Target: 500},
	}
	report := d.RunMission(context.Background(), m)

	want := []craft.Check{
		craft.CheckAltitude, craft.CheckPower, craft.CheckPayload,
		craft.CheckComms, craft.CheckDisturbance,
	}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("observed order = %v, want %v", seen, want)
	}
	if len(report.Results) != len(Sequence) {
		t.Fatalf("Results = %d, want %d", len(report.Results), len(Sequence))
	}

	// 1000 W: everything succeeds, disturbance leaves 700 W and compensates to 900 W
	if report.Failures() != 0 {
		t.Errorf("Failures = %d, want 0", report.Failures())
	}
	if report.Craft.Altitude != 500 {
		t.Errorf("Altitude = %v, want 500", report.Craft.Altitude)
	}
	if report.Craft.Power != 900 {
		t.Errorf("Power = %v, want 900", report.Craft.Power)
	}
	if report.Craft.Status != "Compensation Active: Comms Restored" {
		t.Errorf("Status = %q", report.Craft.Status)
	}
}

func TestDriver_LowPowerCascade(t *testing.T) {
	d := NewDriver(craft.NewController(craft.DefaultConfig()))
	m := Mission{
		Craft:   craft.New("Test", 400, 5000, craft.CommsWorking, 250),
		Command: craft.AttitudeCommand{Target: 500},
	}
	report := d.RunMission(context.Background(), m)

	kinds := make([]craft.Kind, len(report.Results))
	for i, r := range report.Results {
		kinds[i] = r.Kind
	}
	want := []craft.Kind{
		craft.KindAdjusted,        // 250 >= 200
		craft.KindSystemsDisabled, // 250 < 600, comms off
		craft.KindLowPower,        // 250 < 300
		craft.KindCommsDown,       // disabled by the energy evaluator
		craft.KindCompensated,     // 0 + 200
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
	if report.Craft.Power != 200 {
		t.Errorf("Power = %v, want 200", report.Craft.Power)
	}
}

func TestDriver_Controlled(t *testing.T) {
	d := NewDriver(craft.NewController(craft.DefaultConfig()), WithControlledAltitude(true))
	m := Mission{
		Craft:   craft.New("Test", 400, 5000, craft.CommsWorking, 1000),
		Command: craft.AttitudeCommand{Target: 500, Torque: 5, AngularVelocity: 2},
	}

	res := d.Step(context.Background(), m, StepAltitude)
	if res.Kind != craft.KindAdjusted {
		t.Fatalf("Kind = %s, want Adjusted", res.Kind)
	}
	if m.Craft.Power != 800 {
		t.Errorf("Power = %v, want 800 after controlled manoeuvre", m.Craft.Power)
	}
}

func TestDriver_RunStopsOnCancel(t *testing.T) {
	d := NewDriver(craft.NewController(craft.DefaultConfig()))
	missions := Generate(NewSource(1), 3, DefaultRanges())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if reports := d.Run(ctx, missions); len(reports) != 0 {
		t.Errorf("reports = %d, want 0 after cancel", len(reports))
	}

	reports := d.Run(context.Background(), missions)
	if len(reports) != 3 {
		t.Errorf("reports = %d, want 3", len(reports))
	}
	for i, r := range reports {
		if r.Craft.Model != missions[i].Craft.Model {
			t.Errorf("report %d model = %q, want %q", i, r.Craft.Model, missions[i].Craft.Model)
		}
	}
}

func TestStepString(t *testing.T) {
	if StepEvent.String() != "event" || Step(99).String() != "unknown" {
		t.Errorf("unexpected step names: %s, %s", StepEvent, Step(99))
	}
}

func TestGenerate_NegativeCount(t *testing.T) {
	if got := Generate(NewSource(1), -1, DefaultRanges()); len(got) != 0 {
		t.Errorf("Generate(-1) = %d missions, want 0", len(got))
	}
}

func TestDriver_UnknownStepPanics(t *testing.T) {
	d := NewDriver(craft.NewController(craft.DefaultConfig()))
	m := Mission{Craft: craft.New("Test", 400, 5000, craft.CommsWorking, 1000)}

	defer func() {
		if recover() == nil {
			t.Error("Step(42) should panic")
		}
	}()
	d.Step(context.Background(), m, Step(42))
}

func TestDriver_StepLogging(t *testing.T) {
	tests := []struct {
		level   logging.Level
		wantLog bool
	}{
		{logging.LevelDebug, true},
		{logging.LevelWarn, false},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := logging.New(tt.level)
			log.SetOutput(&buf)

			d := NewDriver(craft.NewController(craft.DefaultConfig()), WithLogger(log))
			m := Mission{Craft: craft.New("Test", 400, 5000, craft.CommsWorking, 1000)}
			d.Step(context.Background(), m, StepComms)

			got := strings.Contains(buf.String(), "Transmitting: Data transmitted to Earth craft=Test step=comms")
			if got != tt.wantLog {
				t.Errorf("step line logged = %v, want %v; output %q", got, tt.wantLog, buf.String())
			}
		})
	}
}
