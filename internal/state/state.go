// Package state provides thread-safe run state for the simulation.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-craftsim/internal/craft"
)

// Event is one check result as recorded in the event log.
type Event struct {
	Timestamp time.Time   `json:"timestamp"`
	Craft     string      `json:"craft"`
	Check     craft.Check `json:"check"`
	Kind      craft.Kind  `json:"kind"`
	Reason    string      `json:"reason"`
	OK        bool        `json:"ok"`
}

// Manager records craft snapshots and check results as the driver produces them.
type Manager struct {
	mu sync.RWMutex

	// Latest snapshot per craft, plus first-seen order
	crafts map[string]craft.Craft
	order  []string

	// Result counts per kind
	kindCounts map[craft.Kind]int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	clock func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50, // Ten crafts' worth of results
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		crafts:     make(map[string]craft.Craft),
		kindCounts: make(map[craft.Kind]int),
		maxEvents:  maxEvents,
		events:     make([]Event, 0, maxEvents),
		clock:      time.Now,
	}
}

// Observe records a result. It satisfies sim.Observer.
func (m *Manager) Observe(c craft.Craft, r craft.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, seen := m.crafts[c.Model]; !seen {
		m.order = append(m.order, c.Model)
	}
	m.crafts[c.Model] = c
	m.kindCounts[r.Kind]++

	m.addEvent(Event{
		Timestamp: m.clock(),
		Craft:     c.Model,
		Check:     r.Check,
		Kind:      r.Kind,
		Reason:    r.Reason,
		OK:        r.OK(),
	})
}

// Track registers a craft before any check has run on it.
func (m *Manager) Track(c craft.Craft) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, seen := m.crafts[c.Model]; !seen {
		m.order = append(m.order, c.Model)
	}
	m.crafts[c.Model] = c
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Crafts     []craft.Craft // first-seen order
	KindCounts map[craft.Kind]int
	Events     []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	crafts := make([]craft.Craft, 0, len(m.order))
	for _, model := range m.order {
		crafts = append(crafts, m.crafts[model])
	}

	counts := make(map[craft.Kind]int, len(m.kindCounts))
	for k, v := range m.kindCounts {
		counts[k] = v
	}

	return Snapshot{
		Crafts:     crafts,
		KindCounts: counts,
		Events:     m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Craft returns the latest snapshot for a model.
func (m *Manager) Craft(model string) (craft.Craft, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.crafts[model]
	return c, ok
}

// HasData returns true once any craft has been tracked or observed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order) > 0
}

// Reset clears all recorded state.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.crafts = make(map[string]craft.Craft)
	m.order = nil
	m.kindCounts = make(map[craft.Kind]int)
	m.events = m.events[:0]
	m.eventWriteAt = 0
}
