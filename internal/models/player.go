package models

import "time"

// Role is a player's secret alignment. It stays empty while the room is in
// the lobby and is assigned exactly once per game start.
type Role string

const (
	RoleNone Role = ""
	RoleCrew Role = "crew"
	RoleSpy  Role = "spy"
)

// Player represents one participant inside a room. The ID equals the
// ephemeral identifier of the owning connection.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	IsHost  bool   `json:"isHost"`
	IsAlive bool   `json:"isAlive"`
	Role    Role   `json:"role"`

	// LastKillAt tracks the per-spy kill cooldown. Nil until the first kill.
	LastKillAt *time.Time `json:"lastKillAt,omitempty"`
}
