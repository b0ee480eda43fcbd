package relay

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Presence maps a logical user to at most one live connection. Last writer
// wins: a user identifying from a second device replaces the mapping, the
// stale connection is not told (it just stops receiving fan-out).
type Presence struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]uuid.UUID // userID -> connID
}

func NewPresence() *Presence {
	return &Presence{byUser: make(map[uuid.UUID]uuid.UUID)}
}

// Identify registers or overwrites the mapping for userID and returns the
// resulting online-user snapshot for broadcast.
func (p *Presence) Identify(connID, userID uuid.UUID) []uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byUser[userID] = connID
	return p.snapshotLocked()
}

func (p *Presence) Lookup(userID uuid.UUID) (uuid.UUID, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	connID, ok := p.byUser[userID]
	return connID, ok
}

// Remove drops whatever user is mapped to connID. O(active users), called
// once per disconnect.
func (p *Presence) Remove(connID uuid.UUID) (bool, []uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	removed := false
	for userID, c := range p.byUser {
		if c == connID {
			delete(p.byUser, userID)
			removed = true
		}
	}
	return removed, p.snapshotLocked()
}

func (p *Presence) Snapshot() []uuid.UUID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

func (p *Presence) snapshotLocked() []uuid.UUID {
	users := make([]uuid.UUID, 0, len(p.byUser))
	for userID := range p.byUser {
		users = append(users, userID)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].String() < users[j].String() })
	return users
}
