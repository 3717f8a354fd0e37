package craft

import "testing"

func TestInjectDisturbance_Compensates(t *testing.T) {
	ctl := NewController(DefaultConfig())
	c := New("Test", 400, 5000, CommsNotWorking, 900)

	res := ctl.InjectDisturbance(c)

	// 900 - 300 = 600 < 800, so +200 = 800 and comms come back
	if c.Power != 800 {
		t.Errorf("Power = %v, want 800", c.Power)
	}
	if res.Kind != KindCompensated {
		t.Errorf("Kind = %s, want Compensated", res.Kind)
	}
	if c.Comms != CommsWorking {
		t.Errorf("Comms = %v, want Working", c.Comms)
	}
	if c.Status != "Compensation Active: Comms Restored" {
		t.Errorf("Status = %q", c.Status)
	}
	if !c.Compensated() {
		t.Error("Compensated should be true")
	}
	if res.PowerBefore != 900 || res.PowerAfter != 800 {
		t.Errorf("power before/after = %v/%v, want 900/800", res.PowerBefore, res.PowerAfter)
	}
}

func TestInjectDisturbance_NoCompensationAboveThreshold(t *testing.T) {
	ctl := NewController(DefaultConfig())
	c := New("Test", 400, 5000, CommsWorking, 1200)

	res := ctl.InjectDisturbance(c)

	if c.Power != 900 {
		t.Errorf("Power = %v, want 900", c.Power)
	}
	if res.Kind != KindDisturbed {
		t.Errorf("Kind = %s, want Disturbed", res.Kind)
	}
	if c.Compensated() {
		t.Error("compensation should not have fired")
	}
	if c.Status != "Disturbance: Power Loss" {
		t.Errorf("Status = %q", c.Status)
	}
}

func TestInjectDisturbance_FlooredAtZero(t *testing.T) {
	ctl := NewController(DefaultConfig())
	c := New("Test", 400, 5000, CommsNotWorking, 100)

	res := ctl.InjectDisturbance(c)

	// Floor at 0, then +200; still below threshold so comms stay down
	if c.Power != 200 {
		t.Errorf("Power = %v, want 200", c.Power)
	}
	if res.Kind != KindCompensated {
		t.Errorf("Kind = %s, want Compensated", res.Kind)
	}
	if c.Comms != CommsNotWorking {
		t.Errorf("Comms = %v, want Not working", c.Comms)
	}
	if c.Status != "Compensation Active" {
		t.Errorf("Status = %q", c.Status)
	}
}

func TestInjectDisturbance_CompensatesOnce(t *testing.T) {
	ctl := NewController(DefaultConfig())
	c := New("Test", 400, 5000, CommsWorking, 900)

	first := ctl.InjectDisturbance(c)  // 900 -> 600 -> 800
	second := ctl.InjectDisturbance(c) // 800 -> 500, no second restore

	if first.Kind != KindCompensated {
		t.Errorf("first Kind = %s, want Compensated", first.Kind)
	}
	if second.Kind != KindDisturbed {
		t.Errorf("second Kind = %s, want Disturbed", second.Kind)
	}
	if c.Power != 500 {
		t.Errorf("Power = %v, want 500", c.Power)
	}

	// Never goes negative on repeated drains
	for i := 0; i < 5; i++ {
		ctl.InjectDisturbance(c)
	}
	if c.Power != 0 {
		t.Errorf("Power = %v, want 0", c.Power)
	}
}

func TestInjectDisturbance_ConfigurableConstants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disturbance = DisturbanceConfig{Cost: 100, CompensationThreshold: 600, Restoration: 50}
	ctl := NewController(cfg)
	c := New("Test", 400, 5000, CommsNotWorking, 650)

	ctl.InjectDisturbance(c) // 650 -> 550 -> 600

	if c.Power != 600 {
		t.Errorf("Power = %v, want 600", c.Power)
	}
	if c.Comms != CommsWorking {
		t.Errorf("Comms = %v, want Working at threshold", c.Comms)
	}
}
