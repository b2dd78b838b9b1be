package models

import (
	"sync"
	"time"
)

// Room is the aggregate root for one game session, keyed by a shareable
// code. All mutation goes through the session engine, which holds the
// room's lock for every read-modify-write, whether triggered by an inbound
// command or a scheduled phase transition.
type Room struct {
	Code         string        `json:"roomCode"`
	Status       RoomStatus    `json:"status"`
	Players      []*Player     `json:"players"` // order determines host succession
	TaskProgress int           `json:"taskProgress"`
	ActivityLog  []string      `json:"logs"`
	ChatLog      []ChatMessage `json:"chats"`
	Meeting      *Meeting      `json:"meeting"`

	// Sabotage and freeze are room-scoped spy abilities, so their cooldown
	// bookkeeping lives on the room rather than the player.
	LastSabotageAt *time.Time `json:"lastSabotageAt,omitempty"`
	LastFreezeAt   *time.Time `json:"lastFreezeAt,omitempty"`
	FreezeUntil    *time.Time `json:"freezeUntil,omitempty"`

	mu sync.Mutex
}

// NewRoom creates a room in the lobby phase with no players yet.
func NewRoom(code string) *Room {
	return &Room{
		Code:        code,
		Status:      StatusLobby,
		Players:     make([]*Player, 0, 4),
		ActivityLog: make([]string, 0, 16),
		ChatLog:     make([]ChatMessage, 0),
		Meeting:     NewMeeting(),
	}
}

// Lock acquires the room's lock
func (r *Room) Lock() {
	r.mu.Lock()
}

// Unlock releases the room's lock
func (r *Room) Unlock() {
	r.mu.Unlock()
}

// Log appends a human-readable entry to the activity log.
func (r *Room) Log(entry string) {
	r.ActivityLog = append(r.ActivityLog, entry)
}

// FindPlayer returns the member with the given id, or nil.
func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemovePlayer removes the member with the given id preserving order and
// returns it, or nil if the id is not a member.
func (r *Room) RemovePlayer(id string) *Player {
	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return p
		}
	}
	return nil
}

// Host returns the current host, or nil for an empty room.
func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// AliveCount counts living members holding the given role.
func (r *Room) AliveCount(role Role) int {
	count := 0
	for _, p := range r.Players {
		if p.IsAlive && p.Role == role {
			count++
		}
	}
	return count
}

// MemberIDs returns the participant ids of all current members.
func (r *Room) MemberIDs() []string {
	ids := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// Frozen reports whether the room is under an active freeze effect.
func (r *Room) Frozen(now time.Time) bool {
	return r.FreezeUntil != nil && now.Before(*r.FreezeUntil)
}
