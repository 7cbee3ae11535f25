package mocks

import "sync"

// AuthEvent is one recorded authentication outcome.
type AuthEvent struct {
	Event   string
	Outcome string
}

// MockAuthEventRecorder implements service.AuthEventRecorder by collecting events.
type MockAuthEventRecorder struct {
	mu     sync.Mutex
	events []AuthEvent
}

// RecordAuthEvent implements service.AuthEventRecorder.
func (m *MockAuthEventRecorder) RecordAuthEvent(event, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, AuthEvent{Event: event, Outcome: outcome})
}

// Events returns a copy of the recorded events in order.
func (m *MockAuthEventRecorder) Events() []AuthEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AuthEvent(nil), m.events...)
}
