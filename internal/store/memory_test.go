package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, finished time.Time) RunRecord {
	return RunRecord{ID: id, StartedAt: finished.Add(-time.Second), FinishedAt: finished, Delivered: true}
}

func TestLatest_Empty(t *testing.T) {
	s := NewMemoryStore(0, 0)

	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRunAndLatest(t *testing.T) {
	s := NewMemoryStore(0, 0)
	now := time.Now()

	s.SaveRun(record("a", now.Add(-time.Hour)))
	s.SaveRun(record("b", now))

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
}

func TestRetentionByCount(t *testing.T) {
	s := NewMemoryStore(3, 0)
	now := time.Now()

	for i := 0; i < 5; i++ {
		s.SaveRun(record(fmt.Sprintf("run-%d", i), now.Add(time.Duration(i)*time.Minute)))
	}

	runs := s.Recent(0)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-2", runs[2].ID)
}

func TestRetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Now()

	s.SaveRun(record("old", now.Add(-2*time.Hour)))
	s.SaveRun(record("fresh", now))

	runs := s.Recent(0)
	require.Len(t, runs, 1)
	assert.Equal(t, "fresh", runs[0].ID)
}

func TestRecent_NewestFirstAndLimit(t *testing.T) {
	s := NewMemoryStore(0, 0)
	now := time.Now()

	for i := 0; i < 4; i++ {
		s.SaveRun(record(fmt.Sprintf("run-%d", i), now.Add(time.Duration(i)*time.Minute)))
	}

	runs := s.Recent(2)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
}
