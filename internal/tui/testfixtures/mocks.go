package testfixtures

import (
	"sync"
)

// MockSaver records completion callbacks and returns a configurable error.
type MockSaver struct {
	mu sync.Mutex

	// Err is returned from Save when set.
	Err error

	Calls int
}

// NewMockSaver creates a saver that succeeds.
func NewMockSaver() *MockSaver {
	return &MockSaver{}
}

// Save counts the call and returns Err.
func (m *MockSaver) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Err
}

// SaveCalls returns how many times Save ran.
func (m *MockSaver) SaveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
