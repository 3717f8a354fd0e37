package craft

import (
	"fmt"
	"math"
)

// Band is an inclusive numeric range.
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the band, bounds included.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

func (b Band) String() string {
	return fmt.Sprintf("%.0f-%.0f", b.Min, b.Max)
}

// CheckPolicy describes the power contract of a single subsystem check.
type CheckPolicy struct {
	RequiredPower   float64 // precondition; below this the check fails with LowPower
	Cost            float64 // watts drawn on success when DeductOnSuccess is set
	DeductOnSuccess bool
}

// DisturbanceConfig holds the event injector constants.
type DisturbanceConfig struct {
	Cost                  float64
	CompensationThreshold float64
	Restoration           float64
}

// Config holds every threshold and power policy used by the Controller.
type Config struct {
	LEO     Band
	Payload Band
	Power   Band

	Altitude           CheckPolicy
	ControlledAltitude CheckPolicy
	PayloadOps         CheckPolicy
	Comms              CheckPolicy

	// MinControlEffectiveness is the lowest torque*angular velocity product
	// the controlled altitude manoeuvre accepts.
	MinControlEffectiveness float64

	Disturbance DisturbanceConfig
}

// DefaultConfig returns the stock simulation thresholds.
func DefaultConfig() Config {
	return Config{
		LEO:     Band{Min: 100, Max: 1200},
		Payload: Band{Min: 1000, Max: 10000},
		Power:   Band{Min: 600, Max: 1000},

		Altitude:           CheckPolicy{RequiredPower: 200, Cost: 200},
		ControlledAltitude: CheckPolicy{RequiredPower: 200, Cost: 200, DeductOnSuccess: true},
		PayloadOps:         CheckPolicy{RequiredPower: 300, Cost: 300},
		Comms:              CheckPolicy{RequiredPower: 100, Cost: 100},

		MinControlEffectiveness: 10,

		// These do not line up with the nominal power band; kept as-is.
		Disturbance: DisturbanceConfig{
			Cost:                  300,
			CompensationThreshold: 800,
			Restoration:           200,
		},
	}
}

// Validate checks the configuration for inverted bands and negative values.
func (c Config) Validate() error {
	bands := []struct {
		name string
		band Band
	}{
		{"leo", c.LEO},
		{"payload", c.Payload},
		{"power", c.Power},
	}
	for _, b := range bands {
		if !finite(b.band.Min) || !finite(b.band.Max) {
			return fmt.Errorf("%s band: bounds must be finite numbers", b.name)
		}
		if b.band.Min > b.band.Max {
			return fmt.Errorf("%s band: min %.0f greater than max %.0f", b.name, b.band.Min, b.band.Max)
		}
	}

	policies := []struct {
		name   string
		policy CheckPolicy
	}{
		{"altitude", c.Altitude},
		{"controlled altitude", c.ControlledAltitude},
		{"payload", c.PayloadOps},
		{"comms", c.Comms},
	}
	for _, p := range policies {
		if !finite(p.policy.RequiredPower) || !finite(p.policy.Cost) {
			return fmt.Errorf("%s policy: required power and cost must be finite numbers", p.name)
		}
		if p.policy.RequiredPower < 0 || p.policy.Cost < 0 {
			return fmt.Errorf("%s policy: required power and cost must be non-negative", p.name)
		}
	}

	d := c.Disturbance
	if !finite(d.Cost) || !finite(d.CompensationThreshold) || !finite(d.Restoration) {
		return fmt.Errorf("disturbance: cost, threshold and restoration must be finite numbers")
	}
	if d.Cost < 0 || d.CompensationThreshold < 0 || d.Restoration < 0 {
		return fmt.Errorf("disturbance: cost, threshold and restoration must be non-negative")
	}
	if !finite(c.MinControlEffectiveness) || c.MinControlEffectiveness < 0 {
		return fmt.Errorf("min control effectiveness must be a finite non-negative number")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
