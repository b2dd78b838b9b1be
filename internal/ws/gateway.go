package ws

import (
	"github.com/rs/zerolog"

	"github.com/aaronzipp/launch-sus/internal/models"
	"github.com/aaronzipp/launch-sus/internal/protocol"
)

// Gateway fans room state out to every connection whose participant id is
// currently a member of the room. The engine calls it with the room lock
// held: the snapshot is serialized immediately into an immutable byte
// slice, and fan-out only touches per-client buffered queues, so delivery
// order matches mutation order and nothing here blocks.
type Gateway struct {
	registry *Registry
	log      zerolog.Logger
}

// NewGateway creates a gateway over the given connection registry.
func NewGateway(registry *Registry, log zerolog.Logger) *Gateway {
	return &Gateway{registry: registry, log: log}
}

// RoomState delivers a full snapshot to all members of the room.
func (g *Gateway) RoomState(room *models.Room) {
	g.fanOut(room, protocol.RoomState(room))
}

// VotingResults delivers a one-shot vote outcome to all members, letting
// clients animate the reveal before the next full snapshot lands.
func (g *Gateway) VotingResults(room *models.Room, result *models.VotingResult) {
	g.fanOut(room, protocol.VotingResults(result))
}

func (g *Gateway) fanOut(room *models.Room, payload []byte) {
	for _, id := range room.MemberIDs() {
		client := g.registry.Get(id)
		if client == nil {
			// Member already disconnected; the leave command is in flight.
			g.log.Debug().Str("room", room.Code).Str("participant", id).Msg("skipping dead recipient")
			continue
		}
		client.Enqueue(payload)
	}
}
