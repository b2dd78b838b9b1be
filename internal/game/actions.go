package game

import (
	"fmt"

	"github.com/aaronzipp/launch-sus/internal/models"
)

// CompleteTask advances the crew win condition by one task step. Blocked
// for spies, dead players and while a freeze effect is active.
func (e *Engine) CompleteTask(code, participantID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusActive {
		return ErrInvalidState
	}
	player := room.FindPlayer(participantID)
	if player == nil || !player.IsAlive || player.Role != models.RoleCrew {
		return ErrForbidden
	}
	if room.Frozen(e.now()) {
		return ErrFrozen
	}

	room.TaskProgress = min(100, room.TaskProgress+TaskStep)
	room.Log(fmt.Sprintf("A task was completed by %s", player.Name))

	if room.TaskProgress >= 100 {
		room.Status = models.StatusEnded
		room.Log("Crew wins! Product launched")
		e.log.Info().Str("room", code).Msg("crew victory by tasks")
	}

	e.cast.RoomState(room)
	return nil
}

// Sabotage knocks the global task progress back by one step. Spy-only,
// gated by a room-scoped cooldown.
func (e *Engine) Sabotage(code, participantID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusActive {
		return ErrInvalidState
	}
	spy := room.FindPlayer(participantID)
	if spy == nil || spy.Role != models.RoleSpy || !spy.IsAlive {
		return ErrForbidden
	}

	now := e.now()
	if room.LastSabotageAt != nil && now.Sub(*room.LastSabotageAt) < SabotageCooldown {
		return ErrOnCooldown
	}
	room.LastSabotageAt = &now
	room.TaskProgress = max(0, room.TaskProgress-TaskStep)
	room.Log("Sabotage! Global progress reduced by 10%")

	e.cast.RoomState(room)
	return nil
}

// Freeze starts a DDOS effect that blocks crew task completion room-wide
// for FreezeDuration. Spy-only, with its own room-scoped cooldown.
func (e *Engine) Freeze(code, participantID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusActive {
		return ErrInvalidState
	}
	spy := room.FindPlayer(participantID)
	if spy == nil || spy.Role != models.RoleSpy || !spy.IsAlive {
		return ErrForbidden
	}

	now := e.now()
	if room.LastFreezeAt != nil && now.Sub(*room.LastFreezeAt) < FreezeCooldown {
		return ErrOnCooldown
	}
	until := now.Add(FreezeDuration)
	room.LastFreezeAt = &now
	room.FreezeUntil = &until
	room.Log("System under DDOS attack. Screens frozen for 5s.")

	e.cast.RoomState(room)
	return nil
}

// Kill marks the target dead, then either ends the game with a spy victory
// or schedules a body-report meeting shortly after. Per-spy cooldown.
func (e *Engine) Kill(code, participantID, targetID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusActive {
		return ErrInvalidState
	}
	if targetID == participantID {
		return ErrSelfTarget
	}
	killer := room.FindPlayer(participantID)
	if killer == nil || killer.Role != models.RoleSpy || !killer.IsAlive {
		return ErrForbidden
	}
	target := room.FindPlayer(targetID)
	if target == nil || !target.IsAlive {
		return ErrInvalidTarget
	}

	now := e.now()
	if killer.LastKillAt != nil && now.Sub(*killer.LastKillAt) < KillCooldown {
		return ErrOnCooldown
	}
	killer.LastKillAt = &now

	target.IsAlive = false
	room.Log(fmt.Sprintf("Connection lost for %s", target.Name))
	e.log.Info().Str("room", code).Str("target", targetID).Msg("spy kill")

	if e.checkSpyWin(room) {
		e.cast.RoomState(room)
		return nil
	}

	// Reserve the meeting slot before the snapshot goes out so nothing else
	// opens a meeting in the gap and clients see the pending one, then
	// report the body after a short delay.
	room.Meeting.Active = true
	gen := room.Meeting.Gen
	reason := fmt.Sprintf("%s's body was reported", target.Name)

	e.cast.RoomState(room)

	e.after(KillMeetingDelay, func() {
		e.openScheduledMeeting(code, gen, reason)
	})
	return nil
}

// checkSpyWin ends the game with a spy victory when living spies are at
// least as many as living crew. Caller holds the room lock.
func (e *Engine) checkSpyWin(room *models.Room) bool {
	aliveSpies := room.AliveCount(models.RoleSpy)
	aliveCrew := room.AliveCount(models.RoleCrew)
	if aliveSpies == 0 || aliveSpies < aliveCrew {
		return false
	}
	room.Status = models.StatusEnded
	room.Meeting.Reset()
	room.Log("Spy wins! Launch failed")
	e.log.Info().Str("room", room.Code).Msg("spy victory")
	return true
}
