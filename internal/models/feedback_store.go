package models

import (
	"sync"

	"go.uber.org/atomic"
)

// FeedbackStore owns the canonical record list. All consumers get
// defensive copies; mutations go through the store and bump Version,
// which cache keys are derived from.
type FeedbackStore struct {
	mu      sync.RWMutex
	records []*FeedbackRecord
	version atomic.Uint64
}

func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{
		records: make([]*FeedbackRecord, 0),
	}
}

// LoadAll returns a copy of the full collection. Callers may reorder or
// filter the result without affecting the store.
func (s *FeedbackStore) LoadAll() []*FeedbackRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*FeedbackRecord, len(s.records))
	for i, r := range s.records {
		cp := *r
		out[i] = &cp
	}
	return out
}

// ReplaceAll swaps the entire collection. Used by restore-from-disk and
// by rollback after a failed persist.
func (s *FeedbackStore) ReplaceAll(records []*FeedbackRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make([]*FeedbackRecord, len(records))
	for i, r := range records {
		cp := *r
		replaced[i] = &cp
	}
	s.records = replaced
	s.version.Inc()
}

func (s *FeedbackStore) Append(record *FeedbackRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.records = append(s.records, &cp)
	s.version.Inc()
}

// SetArchived flips the archive flag on the record with the given ID.
// Returns false when no record matches.
func (s *FeedbackStore) SetArchived(id string, archived bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			r.Archived = archived
			s.version.Inc()
			return true
		}
	}
	return false
}

// DeleteByID removes the record with the given ID, preserving the
// relative order of the remainder. Returns false when no record matches.
func (s *FeedbackStore) DeleteByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.version.Inc()
			return true
		}
	}
	return false
}

func (s *FeedbackStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Version is a monotonic mutation counter. Derived views cached under a
// given version are safe to serve until the version moves.
func (s *FeedbackStore) Version() uint64 {
	return s.version.Load()
}
