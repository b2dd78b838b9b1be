package game

import (
	crand "crypto/rand"
	"encoding/hex"
	"math/rand"
	"strings"

	"github.com/aaronzipp/launch-sus/internal/store"
)

// GenerateRoomCode creates a random room code (uppercase hex, 6 chars).
func GenerateRoomCode() string {
	buf := make([]byte, RoomCodeLength/2)
	if _, err := crand.Read(buf); err != nil {
		// fallback to math/rand if crypto fails
		for i := range buf {
			buf[i] = byte(rand.Intn(256))
		}
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

// UniqueRoomCode generates a room code not currently in use.
func UniqueRoomCode(rooms *store.RoomStore) string {
	for {
		code := GenerateRoomCode()
		if !rooms.Exists(code) {
			return code
		}
	}
}
