// Package craft models a spacecraft record and the subsystem checks that run against it.
package craft

// StatusIdle is the status of a craft no check has touched yet.
const StatusIdle = "Idle"

// CommsState is the on/off state of the communications subsystem.
type CommsState int

const (
	CommsWorking CommsState = iota
	CommsNotWorking
)

func (s CommsState) String() string {
	switch s {
	case CommsWorking:
		return "Working"
	case CommsNotWorking:
		return "Not working"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s CommsState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Craft is the mutable record every subsystem check reads and writes.
type Craft struct {
	Model       string
	Altitude    float64 // miles
	PayloadMass float64 // kg
	Comms       CommsState
	Power       float64 // watts
	Status      string

	compensated bool
}

// New creates a craft in the Idle status.
func New(model string, altitude, payloadMass float64, comms CommsState, power float64) *Craft {
	return &Craft{
		Model:       model,
		Altitude:    altitude,
		PayloadMass: payloadMass,
		Comms:       comms,
		Power:       power,
		Status:      StatusIdle,
	}
}

// Compensated reports whether the compensating system has already fired.
func (c *Craft) Compensated() bool {
	return c.compensated
}

// Clone returns a value copy suitable for snapshots.
func (c *Craft) Clone() Craft {
	return *c
}

// drain removes watts from the craft, floored at zero.
func (c *Craft) drain(watts float64) {
	c.Power -= watts
	if c.Power < 0 {
		c.Power = 0
	}
}
