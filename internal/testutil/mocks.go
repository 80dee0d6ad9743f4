package testutil

import (
	"sync"
	"time"

	"sfd/internal/models"
	"sfd/internal/providers"
	"sfd/internal/services"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockPersister implements interfaces.PersisterInterface with
// injectable failures.
type MockPersister struct {
	mu      sync.Mutex
	Saved   []*models.StorageV2
	SaveErr error
	LoadDoc *models.StorageV2
	LoadErr error
}

func (m *MockPersister) Save(doc *models.StorageV2) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, doc)
	return nil
}

func (m *MockPersister) Load() (*models.StorageV2, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.LoadDoc != nil {
		return m.LoadDoc, nil
	}
	return &models.StorageV2{
		Version:   models.StorageVersion,
		Feedbacks: make([]*models.FeedbackRecord, 0),
	}, nil
}

func (m *MockPersister) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}

// MockFeedbackService implements services.FeedbackServiceInterface.
type MockFeedbackService struct {
	mu           sync.Mutex
	SubmitCalls  []*models.FeedbackSubmission
	SubmitRecord *models.FeedbackRecord
	SubmitErr    error
	Records      []*models.FeedbackRecord
	ArchiveCalls []string
	ArchiveErr   error
	DeleteCalls  []string
	DeleteErr    error
	ThemeValue   string
	ThemeErr     error
	StoreVersion uint64
	DirtyValue   bool
	PersistErr   error
	PersistCalls int
	RestoreErr   error
	RestoreCalls int
	Notifier     *services.Notifier
}

func (m *MockFeedbackService) Submit(sub *models.FeedbackSubmission) (*models.FeedbackRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmitCalls = append(m.SubmitCalls, sub)
	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}
	if m.SubmitRecord != nil {
		return m.SubmitRecord, nil
	}
	return &models.FeedbackRecord{ID: "mock-id"}, nil
}

func (m *MockFeedbackService) List() []*models.FeedbackRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Records
}

func (m *MockFeedbackService) Archive(id string, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArchiveCalls = append(m.ArchiveCalls, id)
	return m.ArchiveErr
}

func (m *MockFeedbackService) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	return m.DeleteErr
}

func (m *MockFeedbackService) Theme() string {
	if m.ThemeValue == "" {
		return "light"
	}
	return m.ThemeValue
}

func (m *MockFeedbackService) SetTheme(theme string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ThemeErr != nil {
		return m.ThemeErr
	}
	m.ThemeValue = theme
	return nil
}

func (m *MockFeedbackService) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}

func (m *MockFeedbackService) ArchivedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, r := range m.Records {
		if r.Archived {
			count++
		}
	}
	return count
}

func (m *MockFeedbackService) Version() uint64 { return m.StoreVersion }
func (m *MockFeedbackService) Dirty() bool     { return m.DirtyValue }

func (m *MockFeedbackService) PersistNow() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
	return m.PersistErr
}

func (m *MockFeedbackService) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RestoreCalls++
	return m.RestoreErr
}

func (m *MockFeedbackService) Subscribe() (<-chan services.Event, func()) {
	if m.Notifier == nil {
		m.Notifier = services.NewNotifier()
	}
	return m.Notifier.Subscribe()
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                sync.Mutex
	Requests          int
	CacheHits         int
	CacheMisses       int
	Submissions       map[string]int
	PersistDurations  int
	SentimentPositive int
	SentimentNeutral  int
	SentimentNegative int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncSubmissionsTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Submissions == nil {
		m.Submissions = make(map[string]int)
	}
	m.Submissions[outcome]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistDurations++
}

func (m *MockMetrics) SetSentimentCounts(positive, neutral, negative int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentimentPositive = positive
	m.SentimentNeutral = neutral
	m.SentimentNegative = negative
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}
