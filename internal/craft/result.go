package craft

import (
	"errors"
	"fmt"
)

// Check names the subsystem that produced a Result.
type Check string

const (
	CheckAltitude    Check = "altitude"
	CheckPower       Check = "power"
	CheckPayload     Check = "payload"
	CheckComms       Check = "comms"
	CheckDisturbance Check = "disturbance"
)

// Kind is the outcome tag of a Result.
type Kind string

// Success kinds.
const (
	KindAdjusted     Kind = "Adjusted"
	KindOperating    Kind = "Operating"
	KindTransmitting Kind = "Transmitting"
	KindPowerOK      Kind = "PowerOK"
	KindDisturbed    Kind = "Disturbed"
	KindCompensated  Kind = "Compensated"
)

// Failure kinds.
const (
	KindLowPower            Kind = "LowPower"
	KindOutOfBounds         Kind = "OutOfBounds"
	KindOutOfRange          Kind = "OutOfRange"
	KindInsufficientControl Kind = "InsufficientControl"
	KindCommsDown           Kind = "CommsDown"
	KindSystemsDisabled     Kind = "SystemsDisabled"
)

var (
	ErrLowPower            = errors.New("low power")
	ErrOutOfBounds         = errors.New("altitude out of bounds")
	ErrOutOfRange          = errors.New("payload out of range")
	ErrInsufficientControl = errors.New("insufficient control")
	ErrCommsDown           = errors.New("comms down")
	ErrSystemsDisabled     = errors.New("systems disabled")
)

var kindErrors = map[Kind]error{
	KindLowPower:            ErrLowPower,
	KindOutOfBounds:         ErrOutOfBounds,
	KindOutOfRange:          ErrOutOfRange,
	KindInsufficientControl: ErrInsufficientControl,
	KindCommsDown:           ErrCommsDown,
	KindSystemsDisabled:     ErrSystemsDisabled,
}

// Result is the tagged outcome of one subsystem check.
type Result struct {
	Check  Check
	Kind   Kind
	Reason string

	PowerBefore float64
	PowerAfter  float64

	// Source is set by the power checks only.
	Source PowerSource
}

// OK reports whether the check succeeded.
func (r Result) OK() bool {
	_, failed := kindErrors[r.Kind]
	return !failed
}

// Err returns nil for successful results, otherwise an error wrapping the
// sentinel for the result kind.
func (r Result) Err() error {
	sentinel, failed := kindErrors[r.Kind]
	if !failed {
		return nil
	}
	return fmt.Errorf("%s check: %s: %w", r.Check, r.Reason, sentinel)
}

// PowerDelta is the change in available power caused by the check.
func (r Result) PowerDelta() float64 {
	return r.PowerAfter - r.PowerBefore
}
