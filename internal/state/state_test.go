package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/litescript/ls-craftsim/internal/craft"
)

func result(check craft.Check, kind craft.Kind) craft.Result {
	return craft.Result{Check: check, Kind: kind, Reason: string(kind)}
}

func TestNewManager(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}
	if events := m.RecentEvents(10); len(events) != 0 {
		t.Errorf("RecentEvents = %d, want 0", len(events))
	}
}

func TestManager_Observe(t *testing.T) {
	m := NewManager(DefaultConfig())

	c := *craft.New("Aquila", 400, 5000, craft.CommsWorking, 900)
	c.Status = "Altitude Adjusted"
	m.Observe(c, result(craft.CheckAltitude, craft.KindAdjusted))

	if !m.HasData() {
		t.Error("HasData should be true after Observe")
	}

	got, ok := m.Craft("Aquila")
	if !ok {
		t.Fatal("Craft(Aquila) not found")
	}
	if got.Status != "Altitude Adjusted" {
		t.Errorf("Status = %q, want Altitude Adjusted", got.Status)
	}

	events := m.RecentEvents(10)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Craft != "Aquila" || events[0].Kind != craft.KindAdjusted || !events[0].OK {
		t.Errorf("event = %+v", events[0])
	}
}

func TestManager_CraftOrderAndLatest(t *testing.T) {
	m := NewManager(DefaultConfig())

	b := *craft.New("Borealis", 400, 5000, craft.CommsWorking, 900)
	a := *craft.New("Aquila", 400, 5000, craft.CommsWorking, 900)
	m.Track(b)
	m.Observe(a, result(craft.CheckAltitude, craft.KindAdjusted))

	b.Power = 100
	m.Observe(b, result(craft.CheckPayload, craft.KindLowPower))

	snap := m.Snapshot()
	if len(snap.Crafts) != 2 {
		t.Fatalf("Crafts = %d, want 2", len(snap.Crafts))
	}
	if snap.Crafts[0].Model != "Borealis" || snap.Crafts[1].Model != "Aquila" {
		t.Errorf("order = %s, %s, want Borealis, Aquila", snap.Crafts[0].Model, snap.Crafts[1].Model)
	}
	if snap.Crafts[0].Power != 100 {
		t.Errorf("Borealis power = %v, want latest 100", snap.Crafts[0].Power)
	}
	if snap.KindCounts[craft.KindLowPower] != 1 || snap.KindCounts[craft.KindAdjusted] != 1 {
		t.Errorf("KindCounts = %v", snap.KindCounts)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 5
	m := NewManager(cfg)

	for i := 0; i < 8; i++ {
		c := *craft.New(fmt.Sprintf("SC%d", i), 400, 5000, craft.CommsWorking, 900)
		m.Observe(c, result(craft.CheckComms, craft.KindTransmitting))
	}

	events := m.RecentEvents(100)
	if len(events) != cfg.MaxEvents {
		t.Fatalf("events = %d, want %d", len(events), cfg.MaxEvents)
	}

	// Oldest to newest: SC3..SC7
	for i, e := range events {
		want := fmt.Sprintf("SC%d", i+3)
		if e.Craft != want {
			t.Errorf("events[%d].Craft = %q, want %q", i, e.Craft, want)
		}
	}

	last := m.RecentEvents(2)
	if len(last) != 2 || last[1].Craft != "SC7" {
		t.Errorf("RecentEvents(2) = %+v", last)
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Observe(*craft.New("Test", 400, 5000, craft.CommsWorking, 900), result(craft.CheckComms, craft.KindTransmitting))

	snap := m.Snapshot()
	snap.KindCounts[craft.KindTransmitting] = 999
	snap.Crafts[0].Status = "tampered"

	snap2 := m.Snapshot()
	if snap2.KindCounts[craft.KindTransmitting] == 999 {
		t.Error("Snapshot modification affected manager counts")
	}
	if snap2.Crafts[0].Status == "tampered" {
		t.Error("Snapshot modification affected manager crafts")
	}
}

func TestManager_Reset(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Observe(*craft.New("Test", 400, 5000, craft.CommsWorking, 900), result(craft.CheckComms, craft.KindTransmitting))

	m.Reset()

	if m.HasData() {
		t.Error("HasData should be false after Reset")
	}
	if len(m.Snapshot().Events) != 0 {
		t.Error("events should be empty after Reset")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	iterations := 100

	// Writer goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			c := *craft.New(fmt.Sprintf("SC%d", i%7), 400, 5000, craft.CommsWorking, float64(i))
			m.Observe(c, result(craft.CheckPower, craft.KindPowerOK))
		}
	}()

	// Reader goroutines
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasData()
				_ = m.RecentEvents(5)
				_, _ = m.Craft("SC1")
			}
		}()
	}

	wg.Wait()
}
