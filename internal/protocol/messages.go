// Package protocol defines the JSON message shapes exchanged over the
// websocket: inbound commands from participants and outbound events pushed
// by the server.
package protocol

import (
	"encoding/json"

	"github.com/aaronzipp/launch-sus/internal/models"
)

// Inbound command types.
const (
	CmdGenerateRoomCode = "generate-room-code"
	CmdCreateRoom       = "create-room"
	CmdJoinRoom         = "join-room"
	CmdLeaveRoom        = "leave-room"
	CmdStartGame        = "start-game"
	CmdTaskCompleted    = "task-completed"
	CmdSpyKill          = "spy-kill"
	CmdSabotage         = "sabotage"
	CmdDDOS             = "ddos"
	CmdStartMeeting     = "start-meeting"
	CmdVoting           = "voting"
	CmdChat             = "chat"
	CmdRestartGame      = "restart-game"
)

// Outbound event types.
const (
	EventWelcome           = "welcome"
	EventRoomCodeGenerated = "room-code-generated"
	EventRoomState         = "room-state"
	EventVotingResults     = "voting-results"
	EventError             = "error"
)

// Command is the envelope for every inbound frame. Fields beyond Type vary
// by command; unused ones stay empty.
type Command struct {
	Type      string `json:"type"`
	RoomCode  string `json:"roomCode,omitempty"`
	Name      string `json:"name,omitempty"`
	TargetID  string `json:"targetId,omitempty"`
	SuspectID string `json:"suspectId,omitempty"`
	Msg       string `json:"msg,omitempty"`
}

// ParseCommand decodes an inbound frame.
func ParseCommand(raw []byte) (Command, error) {
	var cmd Command
	err := json.Unmarshal(raw, &cmd)
	return cmd, err
}

type welcomeEvent struct {
	Type          string `json:"type"`
	ParticipantID string `json:"participantId"`
}

type roomCodeEvent struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

type roomStateEvent struct {
	Type string       `json:"type"`
	Room *models.Room `json:"room"`
}

type votingResultsEvent struct {
	Type    string               `json:"type"`
	Results *models.VotingResult `json:"results"`
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Welcome announces the ephemeral participant id right after connect.
func Welcome(participantID string) []byte {
	return mustMarshal(welcomeEvent{Type: EventWelcome, ParticipantID: participantID})
}

// RoomCodeGenerated returns a fresh room code to the requester only.
func RoomCodeGenerated(code string) []byte {
	return mustMarshal(roomCodeEvent{Type: EventRoomCodeGenerated, RoomCode: code})
}

// RoomState serializes a full room snapshot. The engine holds the room lock
// while this runs, so the bytes are a consistent point-in-time view.
func RoomState(room *models.Room) []byte {
	return mustMarshal(roomStateEvent{Type: EventRoomState, Room: room})
}

// VotingResults serializes a one-shot vote outcome.
func VotingResults(result *models.VotingResult) []byte {
	return mustMarshal(votingResultsEvent{Type: EventVotingResults, Results: result})
}

// Error wraps a validation failure for the originating connection.
func Error(message string) []byte {
	return mustMarshal(errorEvent{Type: EventError, Message: message})
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// All event types marshal by construction.
		panic(err)
	}
	return data
}
