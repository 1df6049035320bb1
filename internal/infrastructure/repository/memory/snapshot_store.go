package memory

import (
	"context"
	"sync"

	"github.com/grassroots-fc/matchday/internal/domain/roster"
)

type SnapshotStore struct {
	mu    sync.RWMutex
	items map[string]roster.Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{items: make(map[string]roster.Snapshot)}
}

func (s *SnapshotStore) Get(_ context.Context, matchID string) (roster.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[matchID]
	if !ok {
		return roster.Snapshot{}, false, nil
	}

	return cloneSnapshot(item), true, nil
}

func (s *SnapshotStore) Put(_ context.Context, snapshot roster.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[snapshot.MatchID] = cloneSnapshot(snapshot)
	return nil
}

func cloneSnapshot(item roster.Snapshot) roster.Snapshot {
	copied := item
	copied.StarterIDs = append([]string(nil), item.StarterIDs...)
	copied.SubstituteIDs = append([]string(nil), item.SubstituteIDs...)
	return copied
}
