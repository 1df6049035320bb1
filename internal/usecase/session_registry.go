package usecase

import (
	"context"
	"sync"
	"time"
)

// StateListener receives a session state view after every clock tick and
// every mutation worth broadcasting. Listeners must not block.
type StateListener func(SessionState)

// SessionRegistry keeps the live sessions a server instance is running
// and drives each one's second timer. One session per match id.
type SessionRegistry struct {
	svc      *RecorderService
	mu       sync.Mutex
	entries  map[string]*registryEntry
	listener StateListener
}

type registryEntry struct {
	session *Session
	stop    chan struct{}
}

func NewSessionRegistry(svc *RecorderService) *SessionRegistry {
	return &SessionRegistry{
		svc:     svc,
		entries: make(map[string]*registryEntry),
	}
}

// SetListener wires the live feed. Must be called before sessions open.
func (r *SessionRegistry) SetListener(listener StateListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// Open returns the running session for the match, loading one if needed.
// The registry owns the one-second timer that advances the clock.
func (r *SessionRegistry) Open(ctx context.Context, matchID, myTeamID string) (*Session, error) {
	r.mu.Lock()
	if entry, ok := r.entries[matchID]; ok {
		r.mu.Unlock()
		return entry.session, nil
	}
	r.mu.Unlock()

	session, err := r.svc.LoadSession(ctx, matchID, myTeamID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have opened the session while we loaded.
	if entry, ok := r.entries[matchID]; ok {
		return entry.session, nil
	}

	entry := &registryEntry{session: session, stop: make(chan struct{})}
	r.entries[matchID] = entry
	go r.runTimer(entry)

	return session, nil
}

// Get returns the running session for the match without loading one.
func (r *SessionRegistry) Get(matchID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[matchID]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

// Close stops the session's timer and drops it from the registry. Pending
// unsaved events are discarded; callers save first when that matters.
func (r *SessionRegistry) Close(matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[matchID]
	if !ok {
		return
	}
	close(entry.stop)
	delete(r.entries, matchID)
}

// Shutdown stops every running session timer.
func (r *SessionRegistry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for matchID, entry := range r.entries {
		close(entry.stop)
		delete(r.entries, matchID)
	}
}

// Notify pushes the session's current state to the listener after a
// mutation outside the tick loop, such as a recorded event.
func (r *SessionRegistry) Notify(session *Session) {
	r.mu.Lock()
	listener := r.listener
	r.mu.Unlock()

	if listener != nil {
		listener(session.State())
	}
}

func (r *SessionRegistry) runTimer(entry *registryEntry) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-entry.stop:
			return
		case <-ticker.C:
			entry.session.Tick()
			r.Notify(entry.session)
		}
	}
}
