// Package handlers wires the transport to the session engine: the
// websocket endpoint, the inbound command dispatch table, and the small
// HTTP surface around it.
package handlers

import (
	"github.com/rs/zerolog"

	"github.com/aaronzipp/launch-sus/internal/game"
	"github.com/aaronzipp/launch-sus/internal/store"
	"github.com/aaronzipp/launch-sus/internal/ws"
)

// Context holds the shared dependencies for all handlers
type Context struct {
	Rooms    *store.RoomStore
	Engine   *game.Engine
	Registry *ws.Registry
	Log      zerolog.Logger

	// PublicURL is the externally reachable base URL used in QR join links.
	PublicURL string
}
