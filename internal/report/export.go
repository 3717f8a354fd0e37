package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-craftsim/internal/craft"
	"github.com/litescript/ls-craftsim/internal/sim"
)

// RunExport is the JSON-serializable representation of a simulation run.
type RunExport struct {
	RunID       string          `json:"run_id"`
	Seed        uint64          `json:"seed"`
	GeneratedAt time.Time       `json:"generated_at"`
	Thresholds  ThresholdExport `json:"thresholds"`
	Crafts      []CraftExport   `json:"crafts"`
}

// ThresholdExport records the bands and disturbance constants the run used.
type ThresholdExport struct {
	LEO                   [2]float64 `json:"leo_miles"`
	Payload               [2]float64 `json:"payload_kg"`
	Power                 [2]float64 `json:"power_w"`
	DisturbanceCost       float64    `json:"disturbance_cost_w"`
	CompensationThreshold float64    `json:"compensation_threshold_w"`
	Restoration           float64    `json:"restoration_w"`
}

// CraftExport is a JSON-friendly craft with its results.
type CraftExport struct {
	Model       string           `json:"model"`
	Status      string           `json:"status"`
	Altitude    float64          `json:"altitude_miles"`
	PayloadMass float64          `json:"payload_kg"`
	Comms       craft.CommsState `json:"comms"`
	Power       float64          `json:"available_power_w"`
	PowerSource string           `json:"power_source"`
	Compensated bool             `json:"compensated"`
	Command     CommandExport    `json:"command"`
	Results     []ResultExport   `json:"results"`
}

// CommandExport is the manoeuvre requested of the craft.
type CommandExport struct {
	Target          float64 `json:"target_altitude_miles"`
	Torque          float64 `json:"torque"`
	AngularVelocity float64 `json:"angular_velocity"`
}

// ResultExport is a JSON-friendly check result.
type ResultExport struct {
	Check       string  `json:"check"`
	Kind        string  `json:"kind"`
	OK          bool    `json:"ok"`
	Reason      string  `json:"reason"`
	PowerBefore float64 `json:"power_before_w"`
	PowerAfter  float64 `json:"power_after_w"`
	Source      string  `json:"power_source,omitempty"`
}

// ExportRun converts driver reports to an exportable format.
func ExportRun(runID uuid.UUID, seed uint64, generatedAt time.Time, cfg craft.Config, reports []sim.CraftReport) *RunExport {
	export := &RunExport{
		RunID:       runID.String(),
		Seed:        seed,
		GeneratedAt: generatedAt,
		Thresholds: ThresholdExport{
			LEO:                   [2]float64{cfg.LEO.Min, cfg.LEO.Max},
			Payload:               [2]float64{cfg.Payload.Min, cfg.Payload.Max},
			Power:                 [2]float64{cfg.Power.Min, cfg.Power.Max},
			DisturbanceCost:       cfg.Disturbance.Cost,
			CompensationThreshold: cfg.Disturbance.CompensationThreshold,
			Restoration:           cfg.Disturbance.Restoration,
		},
		Crafts: make([]CraftExport, 0, len(reports)),
	}

	for _, r := range reports {
		c := r.Craft
		ce := CraftExport{
			Model:       c.Model,
			Status:      c.Status,
			Altitude:    c.Altitude,
			PayloadMass: c.PayloadMass,
			Comms:       c.Comms,
			Power:       c.Power,
			PowerSource: string(craft.ClassifyPower(c.Power, cfg.Power)),
			Compensated: c.Compensated(),
			Command: CommandExport{
				Target:          r.Command.Target,
				Torque:          r.Command.Torque,
				AngularVelocity: r.Command.AngularVelocity,
			},
		}
		for _, res := range r.Results {
			ce.Results = append(ce.Results, ResultExport{
				Check:       string(res.Check),
				Kind:        string(res.Kind),
				OK:          res.OK(),
				Reason:      res.Reason,
				PowerBefore: res.PowerBefore,
				PowerAfter:  res.PowerAfter,
				Source:      string(res.Source),
			})
		}
		export.Crafts = append(export.Crafts, ce)
	}

	return export
}

// WriteJSON writes the export as indented JSON to the given writer.
func (e *RunExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
