package models

// RoomStatus represents the current phase of a room's session
type RoomStatus string

const (
	StatusLobby   RoomStatus = "lobby"
	StatusActive  RoomStatus = "active"
	StatusMeeting RoomStatus = "meeting"
	StatusEnded   RoomStatus = "ended"
)
