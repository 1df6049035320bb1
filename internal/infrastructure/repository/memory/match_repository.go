package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/grassroots-fc/matchday/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = m
	}
	return &MatchRepository{items: items}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return item, true, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.HomeTeam.ID == teamID || m.AwayTeam.ID == teamID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})

	return out, nil
}

func (r *MatchRepository) UpdateScoreStatus(_ context.Context, matchID string, homeScore, awayScore int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchID]
	if !ok {
		return fmt.Errorf("match not found: %s", matchID)
	}

	item.HomeScore = homeScore
	item.AwayScore = awayScore
	item.Status = match.NormalizeStatus(status)
	r.items[matchID] = item

	return nil
}

type EventRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]match.GameEvent
	nextID  int
}

func NewEventRepository() *EventRepository {
	return &EventRepository{byMatch: make(map[string][]match.GameEvent)}
}

func (r *EventRepository) ListByMatch(_ context.Context, matchID string) ([]match.GameEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.byMatch[matchID]
	out := make([]match.GameEvent, 0, len(events))
	out = append(out, events...)

	return out, nil
}

func (r *EventRepository) Insert(_ context.Context, event match.GameEvent) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	event.ID = fmt.Sprintf("evt-%06d", r.nextID)
	r.byMatch[event.MatchID] = append(r.byMatch[event.MatchID], event)

	return event.ID, nil
}
