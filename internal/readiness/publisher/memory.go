package publisher

import (
	"context"
	"slices"
	"sync"

	"readiness/internal/readiness/models"
)

// Memory records published notices, dropping repeats of a key it has
// already seen the way a deduplicating consumer would.
type Memory struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	notices []models.DeadlineNotice
}

func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

func (m *Memory) Publish(_ context.Context, notices ...models.DeadlineNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range notices {
		if _, ok := m.seen[n.Key]; ok {
			continue
		}
		m.seen[n.Key] = struct{}{}
		m.notices = append(m.notices, n)
	}
	return nil
}

// Notices returns the distinct notices published so far.
func (m *Memory) Notices() []models.DeadlineNotice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.notices)
}
