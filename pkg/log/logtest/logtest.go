// Package logtest provides Log doubles for tests.
package logtest

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockLog is a testify mock of log.Log. Calls without a matching expectation fail
// the test once Test(t) has been called.
type MockLog struct {
	mock.Mock
}

func (m *MockLog) Debug(message string) { m.Called(message) }
func (m *MockLog) Info(message string)  { m.Called(message) }
func (m *MockLog) Warn(message string)  { m.Called(message) }
func (m *MockLog) Error(message string) { m.Called(message) }

func (m *MockLog) IsDebugEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// Entry is one recorded log call
type Entry struct {
	Level   string
	Message string
}

// Recorder captures log calls in order
type Recorder struct {
	mu           sync.Mutex
	entries      []Entry
	debugQueries int

	// DebugEnabled is returned by IsDebugEnabled
	DebugEnabled bool
}

// NewRecorder creates a Recorder with debug enabled
func NewRecorder() *Recorder {
	return &Recorder{DebugEnabled: true}
}

func (r *Recorder) Debug(message string) { r.add("debug", message) }
func (r *Recorder) Info(message string)  { r.add("info", message) }
func (r *Recorder) Warn(message string)  { r.add("warn", message) }
func (r *Recorder) Error(message string) { r.add("error", message) }

func (r *Recorder) IsDebugEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debugQueries++
	return r.DebugEnabled
}

func (r *Recorder) add(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: message})
}

// Entries returns a copy of the recorded calls
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages at level, or all when level is empty
func (r *Recorder) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if level == "" || e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// DebugQueries counts IsDebugEnabled calls
func (r *Recorder) DebugQueries() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.debugQueries
}

// Interactions counts every call including IsDebugEnabled
func (r *Recorder) Interactions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries) + r.debugQueries
}
