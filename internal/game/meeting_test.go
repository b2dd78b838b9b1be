package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/launch-sus/internal/models"
)

func TestStartMeeting(t *testing.T) {
	env := newTestEnv(t)
	room, _, crew := startedRoom(t, env)
	room.ChatLog = append(room.ChatLog, models.ChatMessage{Name: "Bob", Msg: "stale"})

	require.NoError(t, env.e.StartMeeting("ABC123", crew[0]))

	assert.Equal(t, models.StatusMeeting, room.Status)
	require.NotNil(t, room.Meeting.DiscussionEndsAt)
	assert.Equal(t, env.now.Add(DiscussionWindow), *room.Meeting.DiscussionEndsAt)
	assert.Nil(t, room.Meeting.VotingEndsAt)
	assert.True(t, room.Meeting.Active)
	assert.Empty(t, room.Meeting.Votes)

	// Chat resets to a single system line announcing the caller.
	require.Len(t, room.ChatLog, 1)
	assert.Equal(t, "System", room.ChatLog[0].Name)
	assert.Contains(t, room.ChatLog[0].Msg, "started the meeting")

	require.Equal(t, 1, env.sched.pending())
	assert.Equal(t, DiscussionWindow, env.sched.delays[0])
}

func TestStartMeetingErrors(t *testing.T) {
	env := newTestEnv(t)
	threePlayerRoom(t, env)

	assert.ErrorIs(t, env.e.StartMeeting("ABC123", "p1"), ErrInvalidState, "no meetings in the lobby")
	assert.ErrorIs(t, env.e.StartMeeting("NOPE42", "p1"), ErrRoomNotFound)

	require.NoError(t, env.e.StartGame("ABC123", "p1"))
	require.NoError(t, env.e.StartMeeting("ABC123", "p1"))
	assert.ErrorIs(t, env.e.StartMeeting("ABC123", "p2"), ErrMeetingActive)
}

func TestStartMeetingBlockedWhileBodyReportPending(t *testing.T) {
	env := newTestEnv(t)
	_, spy, crew := startedFourPlayerRoom(t, env)

	require.NoError(t, env.e.Kill("ABC123", spy, crew[0]))

	// Room is still active but the meeting slot is reserved.
	assert.ErrorIs(t, env.e.StartMeeting("ABC123", crew[1]), ErrMeetingActive)
}

func TestDiscussionAdvancesToVoting(t *testing.T) {
	env := newTestEnv(t)
	room, _, crew := startedRoom(t, env)
	require.NoError(t, env.e.StartMeeting("ABC123", crew[0]))

	env.advance(DiscussionWindow)
	env.sched.runNext()

	assert.Nil(t, room.Meeting.DiscussionEndsAt)
	require.NotNil(t, room.Meeting.VotingEndsAt)
	assert.Equal(t, env.now.Add(VotingWindow), *room.Meeting.VotingEndsAt)
	assert.Contains(t, room.ActivityLog[len(room.ActivityLog)-1], "Voting started")

	require.Equal(t, 1, env.sched.pending())
	assert.Equal(t, VotingWindow, env.sched.delays[0])
}

func TestCastVoteDuringDiscussionRejected(t *testing.T) {
	env := newTestEnv(t)
	_, spy, crew := startedRoom(t, env)
	require.NoError(t, env.e.StartMeeting("ABC123", crew[0]))

	assert.ErrorIs(t, env.e.CastVote("ABC123", crew[0], spy), ErrVotingNotActive)
}

func TestCastVote(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedRoom(t, env)
	require.NoError(t, env.e.StartMeeting("ABC123", crew[0]))
	env.sched.runNext()

	require.NoError(t, env.e.CastVote("ABC123", crew[0], spy))
	require.NoError(t, env.e.CastVote("ABC123", crew[1], "")) // empty target is a skip

	assert.Equal(t, spy, room.Meeting.Votes[crew[0]])
	assert.Equal(t, models.VoteSkip, room.Meeting.Votes[crew[1]])

	// Re-voting overwrites the previous choice.
	require.NoError(t, env.e.CastVote("ABC123", crew[1], spy))
	assert.Equal(t, spy, room.Meeting.Votes[crew[1]])
	assert.Len(t, room.Meeting.Votes, 2)
}

func TestCastVoteErrors(t *testing.T) {
	env := newTestEnv(t)
	_, spy, crew := startedRoom(t, env)

	assert.ErrorIs(t, env.e.CastVote("ABC123", crew[0], spy), ErrVotingNotActive)
	assert.ErrorIs(t, env.e.CastVote("NOPE42", crew[0], spy), ErrRoomNotFound)

	require.NoError(t, env.e.StartMeeting("ABC123", crew[0]))
	env.sched.runNext()

	assert.ErrorIs(t, env.e.CastVote("ABC123", "stranger", spy), ErrForbidden)
}

// runVoting opens a meeting, advances into the voting phase and casts the
// given votes, then resolves the deadline.
func runVoting(t *testing.T, env *testEnv, caller string, votes map[string]string) {
	t.Helper()
	require.NoError(t, env.e.StartMeeting("ABC123", caller))
	env.sched.runNext() // discussion deadline
	for voter, choice := range votes {
		require.NoError(t, env.e.CastVote("ABC123", voter, choice))
	}
	env.sched.runNext() // voting deadline
}

func TestVotingEjectsSpyAndEndsGame(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedRoom(t, env)

	runVoting(t, env, crew[0], map[string]string{
		crew[0]: spy,
		crew[1]: spy,
		spy:     crew[0],
	})

	require.Len(t, env.cast.results, 1)
	result := env.cast.results[0]
	require.NotNil(t, result.EjectedPlayer)
	assert.Equal(t, spy, result.EjectedPlayer.ID)
	assert.True(t, result.IsSpy)
	assert.Equal(t, 2, result.Tally[spy])

	assert.Equal(t, models.StatusEnded, room.Status)
	assert.Contains(t, room.ActivityLog[len(room.ActivityLog)-1], "Crew wins! The spy was ejected")
	assert.Equal(t, 0, env.sched.pending(), "game over skips the reveal delay")
}

func TestVotingEjectsCrewAndResumes(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedFourPlayerRoom(t, env)

	runVoting(t, env, crew[0], map[string]string{
		spy:     crew[0],
		crew[1]: crew[0],
		crew[2]: crew[0],
	})

	require.Len(t, env.cast.results, 1)
	result := env.cast.results[0]
	require.NotNil(t, result.EjectedPlayer)
	assert.False(t, result.IsSpy)

	victim := room.FindPlayer(crew[0])
	require.NotNil(t, victim)
	assert.False(t, victim.IsAlive)

	// Still meeting during the reveal, then back to active play.
	assert.Equal(t, models.StatusMeeting, room.Status)
	require.Equal(t, 1, env.sched.pending())
	assert.Equal(t, EjectionDisplayDelay, env.sched.delays[0])

	env.sched.runNext()
	assert.Equal(t, models.StatusActive, room.Status)
	assert.False(t, room.Meeting.Active)
}

func TestVotingTieNoEjection(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedFourPlayerRoom(t, env)

	runVoting(t, env, crew[0], map[string]string{
		crew[0]: spy,
		crew[1]: spy,
		spy:     crew[0],
		crew[2]: crew[0],
	})

	require.Len(t, env.cast.results, 1)
	result := env.cast.results[0]
	assert.Nil(t, result.EjectedPlayer)
	assert.Contains(t, result.Reason, "tied")

	env.sched.runAll()
	assert.Equal(t, models.StatusActive, room.Status)
	for _, p := range room.Players {
		assert.True(t, p.IsAlive)
	}
}

func TestVotingSkipMajorityNoEjection(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedRoom(t, env)

	runVoting(t, env, crew[0], map[string]string{
		crew[0]: models.VoteSkip,
		crew[1]: models.VoteSkip,
		spy:     crew[0],
	})

	result := env.cast.results[0]
	assert.Nil(t, result.EjectedPlayer)
	assert.Contains(t, result.Reason, "skip")

	env.sched.runAll()
	assert.Equal(t, models.StatusActive, room.Status)
}

func TestVotingNoVotesNoEjection(t *testing.T) {
	env := newTestEnv(t)
	room, _, crew := startedRoom(t, env)

	runVoting(t, env, crew[0], nil)

	result := env.cast.results[0]
	assert.Nil(t, result.EjectedPlayer)
	assert.Contains(t, result.Reason, "No votes")

	env.sched.runAll()
	assert.Equal(t, models.StatusActive, room.Status)
}

func TestVotingLeaderLeftNoEjection(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedFourPlayerRoom(t, env)

	require.NoError(t, env.e.StartMeeting("ABC123", crew[0]))
	env.sched.runNext()
	require.NoError(t, env.e.CastVote("ABC123", crew[0], crew[1]))
	require.NoError(t, env.e.CastVote("ABC123", spy, crew[1]))

	require.NoError(t, env.e.LeaveRoom("ABC123", crew[1]))
	env.sched.runNext()

	result := env.cast.results[0]
	assert.Nil(t, result.EjectedPlayer)

	env.sched.runAll()
	assert.Equal(t, models.StatusActive, room.Status)
}

func TestVotingDeadLeaderNoEjection(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedFourPlayerRoom(t, env)

	require.NoError(t, env.e.Kill("ABC123", spy, crew[0]))
	env.sched.runNext() // body-report meeting opens
	env.sched.runNext() // voting begins

	// Both living crew vote for the victim whose body was just found.
	require.NoError(t, env.e.CastVote("ABC123", crew[1], crew[0]))
	require.NoError(t, env.e.CastVote("ABC123", crew[2], crew[0]))
	env.sched.runNext() // voting deadline

	require.Len(t, env.cast.results, 1)
	result := env.cast.results[0]
	assert.Nil(t, result.EjectedPlayer, "a dead leader ejects no one")
	assert.False(t, result.IsSpy)

	env.sched.runAll()
	assert.Equal(t, models.StatusActive, room.Status)
}

func TestMeetingConcludeRechecksSpyWin(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedFourPlayerRoom(t, env)

	// The spy convinces the room to eject a crew member. With crew[0] gone
	// the count drops to 1 spy vs 2 crew; then eject another next meeting.
	runVoting(t, env, crew[0], map[string]string{
		spy:     crew[0],
		crew[1]: crew[0],
		crew[2]: crew[0],
	})
	env.sched.runAll()
	require.Equal(t, models.StatusActive, room.Status)

	runVoting(t, env, crew[1], map[string]string{
		spy:     crew[1],
		crew[2]: crew[1],
	})
	env.sched.runAll()

	assert.Equal(t, models.StatusEnded, room.Status)
	assert.Contains(t, room.ActivityLog[len(room.ActivityLog)-1], "Spy wins! Launch failed")
}

func TestStaleVotingTimerAfterRestart(t *testing.T) {
	env := newTestEnv(t)
	room, spy, crew := startedRoom(t, env)

	require.NoError(t, env.e.StartMeeting("ABC123", crew[0]))
	env.sched.runNext() // voting phase begins

	// The spy bails out, ending the game and bumping the meeting generation,
	// and the host restarts before the voting deadline fires.
	require.NoError(t, env.e.LeaveRoom("ABC123", spy))
	require.Equal(t, models.StatusEnded, room.Status)
	require.NoError(t, env.e.RestartGame("ABC123", "p1"))

	env.sched.runAll()

	assert.Equal(t, models.StatusLobby, room.Status)
	assert.Empty(t, env.cast.results, "stale voting deadline must not tally")
}
