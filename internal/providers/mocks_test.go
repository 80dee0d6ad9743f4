package providers

import (
	"sync"
	"time"
)

// Local mocks: testutil imports this package, so tests here carry their
// own.

type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) record(format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, format)
}

func (l *testLogger) Errorf(_ TypeEnum, format string, _ ...interface{}) { l.record(format) }
func (l *testLogger) Warnf(_ TypeEnum, format string, _ ...interface{})  { l.record(format) }
func (l *testLogger) Debugf(_ TypeEnum, format string, _ ...interface{}) { l.record(format) }
func (l *testLogger) Infof(_ TypeEnum, format string, _ ...interface{})  { l.record(format) }
func (l *testLogger) Fatalf(_ TypeEnum, format string, _ ...interface{}) { l.record(format) }
func (l *testLogger) Close()                                             {}

type testMetrics struct {
	mu          sync.Mutex
	requests    int
	durations   int
	cacheHits   int
	cacheMisses int
}

func (m *testMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
}

func (m *testMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations++
}

func (m *testMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *testMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *testMetrics) IncSubmissionsTotal(_ string)               {}
func (m *testMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (m *testMetrics) SetSentimentCounts(_, _, _ int)             {}
