package sim

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/litescript/ls-craftsim/internal/craft"
)

func TestDriver_Spans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	d := NewDriver(craft.NewController(craft.DefaultConfig()), WithTracer(tp.Tracer(TracerName)))
	m := Mission{
		Craft:   craft.New("Test", 400, 500, craft.CommsWorking, 1000),
		Command: craft.AttitudeCommand{Target: 500},
	}
	d.RunMission(context.Background(), m)

	spans := sr.Ended()
	if len(spans) != len(Sequence)+1 {
		t.Fatalf("ended spans = %d, want %d", len(spans), len(Sequence)+1)
	}

	var mission sdktrace.ReadOnlySpan
	errored := 0
	for _, s := range spans {
		if s.Name() == "craft.mission" {
			mission = s
			continue
		}
		if s.Status().Code == codes.Error {
			errored++
		}
	}
	if mission == nil {
		t.Fatal("no craft.mission span recorded")
	}
	for _, s := range spans {
		if s.Name() == "craft.step" && s.Parent().SpanID() != mission.SpanContext().SpanID() {
			t.Errorf("step span not parented to mission span")
		}
	}

	// Payload of 500 kg is out of range; the only failure in this run
	if errored != 1 {
		t.Errorf("errored step spans = %d, want 1", errored)
	}
}
