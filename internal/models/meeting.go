package models

import "time"

// VoteSkip is the sentinel vote choice for abstaining.
const VoteSkip = "skip"

// Meeting is the discussion-then-vote sub-aggregate of a room. At most one
// meeting is active at a time; exactly one of the two deadlines is non-nil
// while a meeting is in progress and both are nil when idle.
type Meeting struct {
	DiscussionEndsAt *time.Time        `json:"discussionEndsAt"`
	VotingEndsAt     *time.Time        `json:"votingEndsAt"`
	Votes            map[string]string `json:"votes"` // voter id -> target id or VoteSkip
	Active           bool              `json:"active"`

	// Gen increments on every reset. Scheduled phase transitions capture the
	// generation they were created under and become no-ops once it moves on.
	Gen uint64 `json:"-"`
}

// NewMeeting returns an idle meeting.
func NewMeeting() *Meeting {
	return &Meeting{Votes: make(map[string]string)}
}

// Reset returns the meeting to idle and invalidates any scheduled
// transitions still referencing it.
func (m *Meeting) Reset() {
	m.DiscussionEndsAt = nil
	m.VotingEndsAt = nil
	m.Votes = make(map[string]string)
	m.Active = false
	m.Gen++
}

// VotingResult is the derived outcome of a single meeting resolution. It is
// computed once, pushed to clients, then discarded.
type VotingResult struct {
	Tally         map[string]int `json:"tally"`
	EjectedPlayer *Player        `json:"ejectedPlayer"` // nil when no one was ejected
	IsSpy         bool           `json:"isSpy"`
	Reason        string         `json:"reason"`
}

// ChatMessage is one entry of the transient meeting chat log.
type ChatMessage struct {
	Name string `json:"name"`
	Msg  string `json:"msg"`
}
