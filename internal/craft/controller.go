package craft

import "fmt"

// Controller runs subsystem checks against craft records using a fixed Config.
// It holds no per-craft state; everything it changes lives on the Craft.
type Controller struct {
	cfg Config
}

// NewController creates a controller. The config must already be valid.
func NewController(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// AttitudeCommand is the input to the controlled altitude manoeuvre.
type AttitudeCommand struct {
	Target          float64 // miles
	Torque          float64 // N·m
	AngularVelocity float64 // rad/s
}

// Effectiveness is the torque times angular velocity product.
func (cmd AttitudeCommand) Effectiveness() float64 {
	return cmd.Torque * cmd.AngularVelocity
}

// lowPower builds the shared LowPower failure and writes the status.
func lowPower(c *Craft, check Check, status, action string, need float64) Result {
	c.Status = status
	return Result{
		Check:       check,
		Kind:        KindLowPower,
		Reason:      fmt.Sprintf("Cannot %s: need %.0f W, have %.0f W", action, need, c.Power),
		PowerBefore: c.Power,
		PowerAfter:  c.Power,
	}
}

// AdjustAltitude moves the craft to target if it lies in the LEO band.
//
// Mutates Altitude and Status; Power only when the altitude policy deducts on success.
func (ctl *Controller) AdjustAltitude(c *Craft, target float64) Result {
	policy := ctl.cfg.Altitude
	if c.Power < policy.RequiredPower {
		return lowPower(c, CheckAltitude, "Altitude Error: Low Power", "adjust altitude", policy.RequiredPower)
	}

	before := c.Power
	if !ctl.cfg.LEO.Contains(target) {
		c.Status = "Altitude Error"
		return Result{
			Check:       CheckAltitude,
			Kind:        KindOutOfBounds,
			Reason:      fmt.Sprintf("Altitude %.0f miles is outside LEO range (%s miles)", target, ctl.cfg.LEO),
			PowerBefore: before,
			PowerAfter:  c.Power,
		}
	}

	if policy.DeductOnSuccess {
		c.drain(policy.Cost)
	}
	c.Altitude = target
	c.Status = "Altitude Adjusted"
	return Result{
		Check:       CheckAltitude,
		Kind:        KindAdjusted,
		Reason:      fmt.Sprintf("Altitude adjusted to %.0f miles", target),
		PowerBefore: before,
		PowerAfter:  c.Power,
	}
}

// ControlAltitude is the attitude-controlled altitude manoeuvre. Checks run in
// the order power, LEO bounds, control effectiveness.
//
// Mutates Altitude and Status; Power when the controlled policy deducts on success.
func (ctl *Controller) ControlAltitude(c *Craft, cmd AttitudeCommand) Result {
	policy := ctl.cfg.ControlledAltitude
	if c.Power < policy.RequiredPower {
		return lowPower(c, CheckAltitude, "Altitude Error: Low Power", "adjust altitude", policy.RequiredPower)
	}

	before := c.Power
	if !ctl.cfg.LEO.Contains(cmd.Target) {
		c.Status = "Altitude Error"
		return Result{
			Check:       CheckAltitude,
			Kind:        KindOutOfBounds,
			Reason:      fmt.Sprintf("Altitude %.0f miles is outside LEO range (%s miles)", cmd.Target, ctl.cfg.LEO),
			PowerBefore: before,
			PowerAfter:  c.Power,
		}
	}

	if eff := cmd.Effectiveness(); eff < ctl.cfg.MinControlEffectiveness {
		c.Status = "Altitude Error: Insufficient Control"
		return Result{
			Check: CheckAltitude,
			Kind:  KindInsufficientControl,
			Reason: fmt.Sprintf("Control effectiveness %.1f below minimum %.1f",
				eff, ctl.cfg.MinControlEffectiveness),
			PowerBefore: before,
			PowerAfter:  c.Power,
		}
	}

	if policy.DeductOnSuccess {
		c.drain(policy.Cost)
	}
	c.Altitude = cmd.Target
	c.Status = "Altitude Adjusted"
	return Result{
		Check:       CheckAltitude,
		Kind:        KindAdjusted,
		Reason:      fmt.Sprintf("Altitude adjusted to %.0f miles using %.0f W", cmd.Target, before-c.Power),
		PowerBefore: before,
		PowerAfter:  c.Power,
	}
}

// OperatePayload runs the payload if its mass is within the allowed band.
//
// Mutates Status; Power only when the payload policy deducts on success.
func (ctl *Controller) OperatePayload(c *Craft) Result {
	policy := ctl.cfg.PayloadOps
	if c.Power < policy.RequiredPower {
		return lowPower(c, CheckPayload, "Payload Error: Low Power", "operate payload", policy.RequiredPower)
	}

	before := c.Power
	if !ctl.cfg.Payload.Contains(c.PayloadMass) {
		c.Status = "Payload Error"
		return Result{
			Check: CheckPayload,
			Kind:  KindOutOfRange,
			Reason: fmt.Sprintf("Payload %.0f kg out of allowed range (%s kg)",
				c.PayloadMass, ctl.cfg.Payload),
			PowerBefore: before,
			PowerAfter:  c.Power,
		}
	}

	if policy.DeductOnSuccess {
		c.drain(policy.Cost)
	}
	c.Status = "Payload Operating"
	return Result{
		Check:       CheckPayload,
		Kind:        KindOperating,
		Reason:      fmt.Sprintf("Payload operational with %.0f kg", c.PayloadMass),
		PowerBefore: before,
		PowerAfter:  c.Power,
	}
}

// SendData transmits to Earth if the comms subsystem is working.
//
// Mutates Status; Power only when the comms policy deducts on success.
func (ctl *Controller) SendData(c *Craft) Result {
	policy := ctl.cfg.Comms
	if c.Power < policy.RequiredPower {
		return lowPower(c, CheckComms, "Comms Error: Low Power", "send data", policy.RequiredPower)
	}

	before := c.Power
	if c.Comms != CommsWorking {
		c.Status = "Comms Error"
		return Result{
			Check:       CheckComms,
			Kind:        KindCommsDown,
			Reason:      "Cannot transmit: comms not working",
			PowerBefore: before,
			PowerAfter:  c.Power,
		}
	}

	if policy.DeductOnSuccess {
		c.drain(policy.Cost)
	}
	c.Status = "Transmitting"
	return Result{
		Check:       CheckComms,
		Kind:        KindTransmitting,
		Reason:      "Data transmitted to Earth",
		PowerBefore: before,
		PowerAfter:  c.Power,
	}
}
