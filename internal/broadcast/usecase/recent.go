package usecase

import (
	"sync"

	"broadcast-srv/internal/model"
)

// recentStore keeps the tail of delivery outcomes per broadcast in memory.
// Aggregate counters are the durable record; per-recipient outcomes are a
// best-effort tracking aid and do not survive a restart.
type recentStore struct {
	mu       sync.RWMutex
	capacity int
	outcomes map[string][]model.DeliveryOutcome
}

func newRecentStore(capacity int) *recentStore {
	return &recentStore{
		capacity: capacity,
		outcomes: make(map[string][]model.DeliveryOutcome),
	}
}

func (s *recentStore) Put(broadcastID string, outcomes []model.DeliveryOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := outcomes
	if len(kept) > s.capacity {
		kept = kept[len(kept)-s.capacity:]
	}
	s.outcomes[broadcastID] = append([]model.DeliveryOutcome(nil), kept...)
}

func (s *recentStore) Get(broadcastID string, limit int) []model.DeliveryOutcome {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.outcomes[broadcastID]
	if limit <= 0 || limit >= len(all) {
		return append([]model.DeliveryOutcome(nil), all...)
	}
	return append([]model.DeliveryOutcome(nil), all[len(all)-limit:]...)
}
