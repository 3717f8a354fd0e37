package craft

import "fmt"

// InjectDisturbance applies a transient power loss such as an eclipse.
//
// The loss is floored at zero. If power ends below the compensation threshold
// and the craft has never been compensated, the restoration is added once;
// reaching the threshold afterwards also brings comms back up.
//
// Mutates Power, Status, the compensation flag and, on restore, Comms.
func (ctl *Controller) InjectDisturbance(c *Craft) Result {
	d := ctl.cfg.Disturbance
	before := c.Power

	c.drain(d.Cost)
	drained := before - c.Power
	c.Status = "Disturbance: Power Loss"
	res := Result{
		Check:       CheckDisturbance,
		Kind:        KindDisturbed,
		Reason:      fmt.Sprintf("Disturbance drained %.0f W, %.0f W remaining", drained, c.Power),
		PowerBefore: before,
	}

	if c.Power < d.CompensationThreshold && !c.compensated {
		c.compensated = true
		c.Power += d.Restoration
		res.Kind = KindCompensated
		c.Status = "Compensation Active"
		res.Reason = fmt.Sprintf("Disturbance drained %.0f W; compensating system restored %.0f W, now %.0f W",
			drained, d.Restoration, c.Power)
		if c.Power >= d.CompensationThreshold {
			c.Comms = CommsWorking
			c.Status = "Compensation Active: Comms Restored"
			res.Reason += "; comms restored"
		}
	}

	res.PowerAfter = c.Power
	return res
}
