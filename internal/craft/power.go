package craft

import "fmt"

// PowerSource classifies where the craft is drawing power from.
type PowerSource string

const (
	SourceNone      PowerSource = ""
	SourceBattery   PowerSource = "NominalBattery"
	SourceSolar     PowerSource = "EmergencySolar"
	SourceAnomalous PowerSource = "Anomalous"
)

// Label returns the console label for the power source.
func (s PowerSource) Label() string {
	switch s {
	case SourceBattery:
		return "POWER BY BATTERY"
	case SourceSolar:
		return "EMERG LOW PWR; POWER BY SUN PANELS"
	case SourceAnomalous:
		return "FAILURE IN DATA"
	default:
		return "UNKNOWN"
	}
}

// ClassifyPower maps available power onto exactly one source.
//
// Partition:
//   - below band.Min: EmergencySolar
//   - within [band.Min, band.Max]: NominalBattery
//   - above band.Max: Anomalous (a data-integrity signal, not a fault)
func ClassifyPower(power float64, band Band) PowerSource {
	switch {
	case power < band.Min:
		return SourceSolar
	case power <= band.Max:
		return SourceBattery
	default:
		return SourceAnomalous
	}
}

// ClassifyPower classifies the craft's current power. It does not mutate the craft.
func (ctl *Controller) ClassifyPower(c *Craft) Result {
	src := ClassifyPower(c.Power, ctl.cfg.Power)
	return Result{
		Check:       CheckPower,
		Kind:        KindPowerOK,
		Reason:      "POWER STATUS: " + src.Label(),
		PowerBefore: c.Power,
		PowerAfter:  c.Power,
		Source:      src,
	}
}

// EvaluateEnergy classifies power and, when it is below the nominal band,
// disables all systems.
//
// Mutates Comms and Status only on the disabling path.
func (ctl *Controller) EvaluateEnergy(c *Craft) Result {
	res := ctl.ClassifyPower(c)
	if c.Power >= ctl.cfg.Power.Min {
		return res
	}

	c.Comms = CommsNotWorking
	c.Status = "Systems Disabled: Low Power"
	res.Kind = KindSystemsDisabled
	res.Reason = fmt.Sprintf("POWER STATUS: %s; all systems disabled at %.0f W (minimum %.0f W)",
		res.Source.Label(), c.Power, ctl.cfg.Power.Min)
	return res
}
