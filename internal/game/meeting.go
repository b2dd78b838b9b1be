package game

import (
	"fmt"

	"github.com/aaronzipp/launch-sus/internal/models"
)

// StartMeeting opens a discussion phase on behalf of a living player.
func (e *Engine) StartMeeting(code, participantID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.Status == models.StatusMeeting || room.Meeting.Active {
		return ErrMeetingActive
	}
	if room.Status != models.StatusActive {
		return ErrInvalidState
	}
	caller := room.FindPlayer(participantID)
	if caller == nil || !caller.IsAlive {
		return ErrForbidden
	}

	e.openMeeting(room, fmt.Sprintf("%s called for a meeting.", caller.Name))
	room.ChatLog = append(room.ChatLog, models.ChatMessage{
		Name: "System",
		Msg:  fmt.Sprintf("%s started the meeting", caller.Name),
	})

	e.cast.RoomState(room)
	return nil
}

// openScheduledMeeting is the deferred entry point for body-report meetings.
// The room may have ended, restarted or vanished since the kill, so every
// precondition is re-checked before acting.
func (e *Engine) openScheduledMeeting(code string, gen uint64, reason string) {
	room, ok := e.rooms.Get(code)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusActive || room.Meeting.Gen != gen || !room.Meeting.Active {
		return
	}
	room.Meeting.Active = false // openMeeting re-arms it

	e.openMeeting(room, reason)
	e.cast.RoomState(room)
}

// openMeeting transitions the room into the discussion phase and schedules
// the switch to voting. Caller holds the room lock.
func (e *Engine) openMeeting(room *models.Room, reason string) {
	endsAt := e.now().Add(DiscussionWindow)
	room.Status = models.StatusMeeting
	room.ChatLog = room.ChatLog[:0]
	room.Meeting.Active = true
	room.Meeting.DiscussionEndsAt = &endsAt
	room.Meeting.VotingEndsAt = nil
	room.Meeting.Votes = make(map[string]string)
	room.Log(reason)

	e.log.Info().Str("room", room.Code).Str("reason", reason).Msg("meeting started")

	code := room.Code
	gen := room.Meeting.Gen
	e.after(DiscussionWindow, func() {
		e.advanceToVoting(code, gen)
	})
}

// advanceToVoting fires at the discussion deadline; it is a no-op if the
// meeting it was scheduled for is no longer running.
func (e *Engine) advanceToVoting(code string, gen uint64) {
	room, ok := e.rooms.Get(code)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusMeeting || room.Meeting.Gen != gen || room.Meeting.DiscussionEndsAt == nil {
		return
	}

	endsAt := e.now().Add(VotingWindow)
	room.Meeting.DiscussionEndsAt = nil
	room.Meeting.VotingEndsAt = &endsAt
	room.Log("Discussion over. Voting started.")

	e.after(VotingWindow, func() {
		e.resolveVoting(code, gen)
	})

	e.cast.RoomState(room)
}

// CastVote records or overwrites the caller's vote during an active voting
// phase. An empty target counts as a skip.
func (e *Engine) CastVote(code, participantID, suspectID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusMeeting || room.Meeting.VotingEndsAt == nil {
		return ErrVotingNotActive
	}
	voter := room.FindPlayer(participantID)
	if voter == nil || !voter.IsAlive {
		return ErrForbidden
	}

	if suspectID == "" {
		suspectID = models.VoteSkip
	}
	room.Meeting.Votes[participantID] = suspectID
	room.Log(fmt.Sprintf("%s has voted.", voter.Name))

	e.cast.RoomState(room)
	return nil
}

// resolveVoting fires at the voting deadline: tally, maybe eject, maybe end
// the game, otherwise conclude the meeting after a short display delay.
func (e *Engine) resolveVoting(code string, gen uint64) {
	room, ok := e.rooms.Get(code)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusMeeting || room.Meeting.Gen != gen || room.Meeting.VotingEndsAt == nil {
		return
	}
	room.Meeting.VotingEndsAt = nil

	result := e.tallyVotes(room)
	room.Log(result.Reason)
	e.cast.VotingResults(room, result)

	if result.EjectedPlayer != nil && result.IsSpy {
		room.Status = models.StatusEnded
		room.Meeting.Reset()
		room.Log("Crew wins! The spy was ejected")
		e.log.Info().Str("room", code).Msg("crew victory by ejection")
		e.cast.RoomState(room)
		return
	}

	e.cast.RoomState(room)

	e.after(EjectionDisplayDelay, func() {
		e.concludeMeeting(code, gen)
	})
}

// tallyVotes computes the derived voting result and applies the ejection.
// Zero votes, a tie at the maximum, or skip leading all resolve to no
// ejection. Caller holds the room lock.
func (e *Engine) tallyVotes(room *models.Room) *models.VotingResult {
	tally := make(map[string]int)
	for _, choice := range room.Meeting.Votes {
		tally[choice]++
	}

	maxVotes := 0
	var leaders []string
	for choice, count := range tally {
		if count > maxVotes {
			maxVotes = count
			leaders = []string{choice}
		} else if count == maxVotes {
			leaders = append(leaders, choice)
		}
	}

	result := &models.VotingResult{Tally: tally}

	switch {
	case len(leaders) == 0:
		result.Reason = "No votes were cast. No one was ejected."
	case len(leaders) > 1:
		result.Reason = "The vote was tied. No one was ejected."
	case leaders[0] == models.VoteSkip:
		result.Reason = "The crew decided to skip. No one was ejected."
	default:
		target := room.FindPlayer(leaders[0])
		if target == nil || !target.IsAlive {
			// Leading candidate left or died mid-vote; treat like a skip.
			result.Reason = "The accused is gone. No one was ejected."
			break
		}
		target.IsAlive = false
		ejected := *target
		result.EjectedPlayer = &ejected
		result.IsSpy = target.Role == models.RoleSpy
		result.Reason = fmt.Sprintf("%s was ejected.", target.Name)
	}

	return result
}

// concludeMeeting ends the meeting after the reveal delay: re-evaluate the
// spy win condition, otherwise return to active play with an idle meeting.
func (e *Engine) concludeMeeting(code string, gen uint64) {
	room, ok := e.rooms.Get(code)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusMeeting || room.Meeting.Gen != gen {
		return
	}

	room.Meeting.Reset()

	if e.checkSpyWin(room) {
		e.cast.RoomState(room)
		return
	}

	room.Status = models.StatusActive
	e.cast.RoomState(room)
}
