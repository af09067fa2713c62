package storage

import (
	"context"
	"sync"

	"wellness-backend/internal/model"
)

// MemoryStore keeps status checks in process memory. The mutex is held only
// for the append or the snapshot copy, never across any network or inference
// call. Records live for the process lifetime.
type MemoryStore struct {
	mu     sync.Mutex
	checks []model.StatusCheck
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) InsertStatusCheck(_ context.Context, check *model.StatusCheck) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Store a copy so later caller mutation cannot reach the log.
	m.checks = append(m.checks, *check)
	return nil
}

func (m *MemoryStore) ListStatusChecks(_ context.Context, limit int) ([]*model.StatusCheck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.checks)
	if limit > 0 && n > limit {
		n = limit
	}

	result := make([]*model.StatusCheck, n)
	for i := 0; i < n; i++ {
		check := m.checks[i]
		result[i] = &check
	}

	return result, nil
}

func (m *MemoryStore) Close(_ context.Context) error {
	return nil
}
