package store

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when no run has been recorded yet.
var ErrNotFound = errors.New("no runs recorded")

// LocationStatus is the per-location outcome captured in a run record.
type LocationStatus struct {
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
	OK     bool   `json:"ok"`
	Err    string `json:"err,omitempty"`
}

// RunRecord captures one full pipeline run, successful or not.
type RunRecord struct {
	ID         string           `json:"id"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Locations  []LocationStatus `json:"locations"`
	Delivered  bool             `json:"delivered"`
	Message    string           `json:"message,omitempty"`
	Err        string           `json:"err,omitempty"`
}

// MemoryStore is a concurrency-safe in-memory history of recent runs.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []RunRecord

	// retention configuration
	maxHistory int           // max number of records (0 = unlimited)
	maxAge     time.Duration // max age of records (0 = unlimited)
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveRun appends a run record and enforces retention.
func (s *MemoryStore) SaveRun(rec RunRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, rec)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.runs) > s.maxHistory {
		over := len(s.runs) - s.maxHistory
		s.runs = s.runs[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs); i++ {
			if !s.runs[i].FinishedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(s.runs) {
			s.runs = s.runs[i:]
		}
	}
}

// Latest returns the most recent run record.
func (s *MemoryStore) Latest() (RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return RunRecord{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// Recent returns up to n most recent run records, newest first.
func (s *MemoryStore) Recent(n int) []RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.runs) {
		n = len(s.runs)
	}

	out := make([]RunRecord, 0, n)
	for i := len(s.runs) - 1; i >= len(s.runs)-n; i-- {
		out = append(out, s.runs[i])
	}
	return out
}
