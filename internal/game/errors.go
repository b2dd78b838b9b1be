package game

import "errors"

// Validation failures are surfaced to the originating connection only.
// None of them mutate room state or trigger a broadcast.
var (
	ErrRoomNotFound     = errors.New("no room exists with this code")
	ErrRoomExists       = errors.New("room with this code already exists")
	ErrAlreadyJoined    = errors.New("you are already in the room")
	ErrGameStarted      = errors.New("the game has already started or ended")
	ErrInvalidState     = errors.New("action not allowed in the current phase")
	ErrVotingNotActive  = errors.New("voting is not active")
	ErrMeetingActive    = errors.New("meeting already in progress")
	ErrForbidden        = errors.New("not allowed")
	ErrRoomFull         = errors.New("the room can't hold more than 10 players")
	ErrNotEnoughPlayers = errors.New("there should be at least 3 players")
	ErrOnCooldown       = errors.New("ability on cooldown")
	ErrFrozen           = errors.New("can't do tasks while under attack")
	ErrSelfTarget       = errors.New("you can't kill yourself")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrInvalidArgument  = errors.New("provide room code and name of player")
)
