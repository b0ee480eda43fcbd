package relay

import (
	"sync"

	"github.com/google/uuid"
)

// Rooms is the transient fan-out subscription table: roomID -> set of live
// connection IDs. Rooms are implicit, created on first join. Membership is
// connection-scoped: two tabs of the same user are two memberships.
//
// Disconnect does NOT clean memberships up; stale entries are harmless and
// removed lazily when fan-out notices a dead connection.
type Rooms struct {
	mu      sync.RWMutex
	members map[uuid.UUID]map[uuid.UUID]struct{}
}

func NewRooms() *Rooms {
	return &Rooms{members: make(map[uuid.UUID]map[uuid.UUID]struct{})}
}

func (r *Rooms) Join(connID, roomID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[roomID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		r.members[roomID] = set
	}
	set[connID] = struct{}{}
}

func (r *Rooms) Leave(connID, roomID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[roomID]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(r.members, roomID)
	}
}

func (r *Rooms) MembersOf(roomID uuid.UUID) []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.members[roomID]
	out := make([]uuid.UUID, 0, len(set))
	for connID := range set {
		out = append(out, connID)
	}
	return out
}

// Drop removes a connection from every room. Lazy cleanup path, invoked when
// fan-out hits a connection that no longer exists.
func (r *Rooms) Drop(connID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for roomID, set := range r.members {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.members, roomID)
		}
	}
}
