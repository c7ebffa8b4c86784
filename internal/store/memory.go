package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
)

// MemoryStore is a process-local Store. Records do not survive a restart.
type MemoryStore struct {
	mu   sync.Mutex
	recs map[string]jobs.Record
	now  func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{recs: make(map[string]jobs.Record), now: time.Now}
}

func (m *MemoryStore) Put(_ context.Context, id string, rec jobs.Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	m.mu.Lock()
	m.recs[id] = rec
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (jobs.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	return rec, ok, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.recs, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Claim(_ context.Context, id string) (jobs.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if ok {
		delete(m.recs, id)
	}
	return rec, ok, nil
}

// Len is the number of live records.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}

// Sweep drops records created more than maxAge ago and returns how many went.
func (m *MemoryStore) Sweep(maxAge time.Duration) int {
	cutoff := m.now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, rec := range m.recs {
		if rec.CreatedAt.Before(cutoff) {
			delete(m.recs, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep(ttl) every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, ttl, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(ttl); n > 0 {
				log.Info().Int("evicted", n).Dur("ttl", ttl).Msg("expired job records swept")
			}
		}
	}
}
