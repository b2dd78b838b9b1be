package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/aaronzipp/launch-sus/internal/models"
	"github.com/aaronzipp/launch-sus/internal/store"
)

// Broadcaster publishes room state to every member connection. The engine
// calls it while holding the room's lock, so implementations must serialize
// immediately and must never block on slow recipients.
type Broadcaster interface {
	// RoomState delivers a full-state snapshot to all members.
	RoomState(room *models.Room)
	// VotingResults delivers a one-shot vote outcome to all members without
	// re-sending full state.
	VotingResults(room *models.Room, result *models.VotingResult)
}

// Engine owns every state transition of every room: membership, role
// assignment, action validation, cooldowns, meeting scheduling, vote
// tallying and win conditions. It is the only component that mutates rooms.
type Engine struct {
	rooms *store.RoomStore
	cast  Broadcaster
	log   zerolog.Logger

	// Injected for deterministic tests.
	rng   *rand.Rand
	now   func() time.Time
	after func(d time.Duration, f func())
}

// NewEngine constructs an engine with a time-seeded rng and real timers.
func NewEngine(rooms *store.RoomStore, cast Broadcaster, log zerolog.Logger) *Engine {
	return &Engine{
		rooms: rooms,
		cast:  cast,
		log:   log,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// CreateRoom creates a room in the lobby phase with the caller as host.
func (e *Engine) CreateRoom(code, name, participantID string) error {
	if code == "" || name == "" {
		return ErrInvalidArgument
	}

	room := models.NewRoom(code)
	host := &models.Player{
		ID:      participantID,
		Name:    name,
		Color:   Colors[e.rng.Intn(len(Colors))],
		IsHost:  true,
		IsAlive: true,
	}
	room.Players = append(room.Players, host)
	room.Log(fmt.Sprintf("Room %s created by %s", code, name))

	if !e.rooms.PutIfAbsent(code, room) {
		return ErrRoomExists
	}

	e.log.Info().Str("room", code).Str("participant", participantID).Msg("room created")

	room.Lock()
	defer room.Unlock()
	e.cast.RoomState(room)
	return nil
}

// JoinRoom adds the caller to a lobby-phase room.
func (e *Engine) JoinRoom(code, name, participantID string) error {
	if code == "" || name == "" {
		return ErrInvalidArgument
	}
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusLobby {
		return ErrGameStarted
	}
	if len(room.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	if room.FindPlayer(participantID) != nil {
		return ErrAlreadyJoined
	}

	room.Players = append(room.Players, &models.Player{
		ID:      participantID,
		Name:    name,
		Color:   e.assignColor(room),
		IsAlive: true,
	})
	room.Log(fmt.Sprintf("%s joined the room", name))

	e.log.Info().Str("room", code).Str("participant", participantID).Msg("player joined")

	e.cast.RoomState(room)
	return nil
}

// LeaveRoom removes the caller from the room regardless of phase. An empty
// room is destroyed. A departing host hands off to the lowest-index member.
// A departing spy ends a game in progress with an immediate crew victory.
func (e *Engine) LeaveRoom(code, participantID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	leaving := room.RemovePlayer(participantID)
	if leaving == nil {
		return nil
	}
	room.Log(fmt.Sprintf("%s left the room!", leaving.Name))

	if len(room.Players) == 0 {
		// No empty rooms persist. Stale timers observe the missing room and
		// become no-ops.
		e.rooms.Delete(code)
		e.log.Info().Str("room", code).Msg("room destroyed")
		return nil
	}

	if leaving.IsHost {
		next := room.Players[0]
		next.IsHost = true
		room.Log(fmt.Sprintf("%s is now the host", next.Name))
	}

	// Without a spy the game cannot continue: crew wins on the spot and any
	// in-flight vote is discarded.
	if leaving.Role == models.RoleSpy && room.Status != models.StatusEnded {
		room.Meeting.Reset()
		room.Status = models.StatusEnded
		room.Log("The spy left the game. Crew wins!")
	}

	e.log.Info().Str("room", code).Str("participant", participantID).Msg("player left")

	e.cast.RoomState(room)
	return nil
}

// LeaveAll removes the participant from every room it occupies. Called on
// disconnect, where no explicit leave-room command arrives and nothing
// stops a single connection from being a member of several rooms.
func (e *Engine) LeaveAll(participantID string) {
	for _, code := range e.rooms.Codes() {
		e.LeaveRoom(code, participantID)
	}
}

// StartGame assigns roles and moves the room from lobby to active play.
// Host-only; requires at least MinPlayers members.
func (e *Engine) StartGame(code, participantID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	caller := room.FindPlayer(participantID)
	if caller == nil || !caller.IsHost {
		return ErrForbidden
	}
	if room.Status != models.StatusLobby {
		return ErrInvalidState
	}
	if len(room.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	spy := e.rng.Intn(len(room.Players))
	for i, p := range room.Players {
		if i == spy {
			p.Role = models.RoleSpy
		} else {
			p.Role = models.RoleCrew
		}
		p.IsAlive = true
	}

	room.TaskProgress = 0
	room.Status = models.StatusActive
	room.Log("Game started")

	e.log.Info().Str("room", code).Int("players", len(room.Players)).Msg("game started")

	e.cast.RoomState(room)
	return nil
}

// RestartGame clears all per-game state and returns an ended room to the
// lobby. Host-only, like StartGame.
func (e *Engine) RestartGame(code, participantID string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	caller := room.FindPlayer(participantID)
	if caller == nil || !caller.IsHost {
		return ErrForbidden
	}
	if room.Status != models.StatusEnded {
		return ErrInvalidState
	}

	for _, p := range room.Players {
		p.IsAlive = true
		p.Role = models.RoleNone
		p.LastKillAt = nil
	}
	room.Status = models.StatusLobby
	room.TaskProgress = 0
	room.ActivityLog = room.ActivityLog[:0]
	room.ChatLog = room.ChatLog[:0]
	room.LastSabotageAt = nil
	room.LastFreezeAt = nil
	room.FreezeUntil = nil
	room.Meeting.Reset()
	room.Log("Game restarted.")

	e.log.Info().Str("room", code).Msg("game restarted")

	e.cast.RoomState(room)
	return nil
}

// Chat appends a meeting chat message. Only living members may speak.
func (e *Engine) Chat(code, participantID, msg string) error {
	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusMeeting {
		return ErrInvalidState
	}
	player := room.FindPlayer(participantID)
	if player == nil || !player.IsAlive {
		return ErrForbidden
	}

	room.ChatLog = append(room.ChatLog, models.ChatMessage{Name: player.Name, Msg: msg})
	e.cast.RoomState(room)
	return nil
}

// assignColor picks the first unused palette color, falling back to a
// random one once the palette is exhausted.
func (e *Engine) assignColor(room *models.Room) string {
	used := make(map[string]bool, len(room.Players))
	for _, p := range room.Players {
		used[p.Color] = true
	}
	for _, c := range Colors {
		if !used[c] {
			return c
		}
	}
	return Colors[e.rng.Intn(len(Colors))]
}
