package handlers

import (
	"github.com/aaronzipp/launch-sus/internal/game"
	"github.com/aaronzipp/launch-sus/internal/protocol"
)

// connection is the slice of ws.Client the dispatcher needs: a way to push
// events back to the originating participant.
type connection interface {
	Enqueue(msg []byte)
}

// Dispatch decodes one inbound frame and routes it to the session engine.
// Validation failures surface to the originating connection only; they
// never mutate room state and never broadcast.
func (ctx *Context) Dispatch(participantID string, c connection, raw []byte) {
	cmd, err := protocol.ParseCommand(raw)
	if err != nil {
		c.Enqueue(protocol.Error("invalid JSON"))
		return
	}

	switch cmd.Type {
	case protocol.CmdGenerateRoomCode:
		code := game.UniqueRoomCode(ctx.Rooms)
		c.Enqueue(protocol.RoomCodeGenerated(code))
		return

	case protocol.CmdCreateRoom:
		err = ctx.Engine.CreateRoom(cmd.RoomCode, cmd.Name, participantID)

	case protocol.CmdJoinRoom:
		err = ctx.Engine.JoinRoom(cmd.RoomCode, cmd.Name, participantID)

	case protocol.CmdLeaveRoom:
		err = ctx.Engine.LeaveRoom(cmd.RoomCode, participantID)

	case protocol.CmdStartGame:
		err = ctx.Engine.StartGame(cmd.RoomCode, participantID)

	case protocol.CmdTaskCompleted:
		err = ctx.Engine.CompleteTask(cmd.RoomCode, participantID)

	case protocol.CmdSpyKill:
		err = ctx.Engine.Kill(cmd.RoomCode, participantID, cmd.TargetID)

	case protocol.CmdSabotage:
		err = ctx.Engine.Sabotage(cmd.RoomCode, participantID)

	case protocol.CmdDDOS:
		err = ctx.Engine.Freeze(cmd.RoomCode, participantID)

	case protocol.CmdStartMeeting:
		err = ctx.Engine.StartMeeting(cmd.RoomCode, participantID)

	case protocol.CmdVoting:
		err = ctx.Engine.CastVote(cmd.RoomCode, participantID, cmd.SuspectID)

	case protocol.CmdChat:
		err = ctx.Engine.Chat(cmd.RoomCode, participantID, cmd.Msg)

	case protocol.CmdRestartGame:
		err = ctx.Engine.RestartGame(cmd.RoomCode, participantID)

	default:
		c.Enqueue(protocol.Error("unknown command"))
		return
	}

	if err != nil {
		ctx.Log.Debug().Str("participant", participantID).Str("type", cmd.Type).Err(err).Msg("command rejected")
		c.Enqueue(protocol.Error(err.Error()))
	}
}
