package game

import "time"

const (
	// MinPlayers is the minimum number of players required to start a game
	MinPlayers = 3

	// MaxPlayers is the hard cap on room membership
	MaxPlayers = 10

	// TaskStep is how much one completed task moves the global progress
	TaskStep = 10

	// KillCooldown is the per-spy delay between kills
	KillCooldown = 30 * time.Second

	// SabotageCooldown is the room-scoped delay between sabotages
	SabotageCooldown = 30 * time.Second

	// FreezeCooldown is the room-scoped delay between freezes, independent
	// from the sabotage cooldown
	FreezeCooldown = 60 * time.Second

	// FreezeDuration is how long crew task completion stays blocked
	FreezeDuration = 5 * time.Second

	// DiscussionWindow is the length of the meeting discussion phase
	DiscussionWindow = 45 * time.Second

	// VotingWindow is the length of the meeting voting phase
	VotingWindow = 15 * time.Second

	// EjectionDisplayDelay lets clients animate the vote reveal before the
	// meeting concludes
	EjectionDisplayDelay = 2500 * time.Millisecond

	// KillMeetingDelay is the pause between a kill and the body-report
	// meeting that follows it
	KillMeetingDelay = 2 * time.Second

	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
)

// Colors is the fixed palette players draw from; unique within a room
// until exhausted, then reused at random.
var Colors = []string{
	"red",
	"orange",
	"gold",
	"yellow",
	"lime",
	"green",
	"teal",
	"blue",
	"indigo",
	"deeppink",
}
