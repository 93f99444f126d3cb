package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/downtime-prediction/internal/risk"
)

var (
	// ErrNotFound is returned when no data is available for a given region.
	ErrNotFound = errors.New("no risk data for region")
)

// defaultMaxAlerts bounds the recent-alerts list.
const defaultMaxAlerts = 100

// SnapshotHistory holds a time-ordered list of risk snapshots for a region.
type SnapshotHistory struct {
	Snapshots []risk.RiskSnapshot
}

// MemoryStore is a concurrency-safe in-memory implementation of the risk store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: region, value: history
	data map[string]*SnapshotHistory

	// newest-last list of alert events
	alerts []risk.AlertEvent

	// retention configuration
	maxHistory int           // max number of snapshots per region
	maxAge     time.Duration // optional max age for snapshots
	maxAlerts  int
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		maxAlerts:  defaultMaxAlerts,
	}
}

// SaveSnapshot appends a new snapshot for a region and enforces retention.
func (s *MemoryStore) SaveSnapshot(region string, snap risk.RiskSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[region]
	if !ok {
		history = &SnapshotHistory{}
		s.data[region] = history
	}

	history.Snapshots = append(history.Snapshots, snap)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		history.Snapshots = history.Snapshots[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Snapshots); i++ {
			if !history.Snapshots[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.Snapshots) {
			history.Snapshots = history.Snapshots[i:]
		}
	}
}

// GetLatest returns the most recent snapshot for a region.
func (s *MemoryStore) GetLatest(region string) (risk.RiskSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[region]
	if !ok || len(history.Snapshots) == 0 {
		return risk.RiskSnapshot{}, ErrNotFound
	}
	return history.Snapshots[len(history.Snapshots)-1], nil
}

// GetRange returns all snapshots for a region between from and to (inclusive).
func (s *MemoryStore) GetRange(region string, from, to time.Time) ([]risk.RiskSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[region]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []risk.RiskSnapshot
	for _, snap := range history.Snapshots {
		if !snap.Timestamp.Before(from) && !snap.Timestamp.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}

// RecordAlert appends an alert event, dropping the oldest when over the bound.
func (s *MemoryStore) RecordAlert(ev risk.AlertEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = append(s.alerts, ev)
	if s.maxAlerts > 0 && len(s.alerts) > s.maxAlerts {
		over := len(s.alerts) - s.maxAlerts
		s.alerts = s.alerts[over:]
	}
}

// RecentAlerts returns up to limit alert events, newest first.
func (s *MemoryStore) RecentAlerts(limit int) []risk.AlertEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.alerts) {
		limit = len(s.alerts)
	}

	out := make([]risk.AlertEvent, 0, limit)
	for i := len(s.alerts) - 1; i >= len(s.alerts)-limit; i-- {
		out = append(out, s.alerts[i])
	}
	return out
}
