package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/aaronzipp/launch-sus/internal/protocol"
	"github.com/aaronzipp/launch-sus/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The game is origin-agnostic; joining is gated by knowing a room code.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the connection, assigns an ephemeral participant id,
// announces it, and runs the read loop until the peer goes away. On
// disconnect the participant implicitly leaves every room it occupies.
func (ctx *Context) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		ctx.Log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	client := ws.NewClient(id, conn, ctx.Log)
	ctx.Registry.Add(client)

	ctx.Log.Info().Str("participant", id).Msg("connection opened")

	go client.WritePump()
	client.Enqueue(protocol.Welcome(id))

	client.ReadPump(func(raw []byte) {
		ctx.Dispatch(id, client, raw)
	})

	// Connection gone: detach from the registry, then sweep every room the
	// participant is still a member of.
	ctx.Registry.Remove(id)
	ctx.Engine.LeaveAll(id)
	client.Close()

	ctx.Log.Info().Str("participant", id).Msg("connection closed")
}
