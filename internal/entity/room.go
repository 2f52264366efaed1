package entity

// RoomStatus is the lifecycle status of an online room.
type RoomStatus string

const (
	RoomWaiting      RoomStatus = "waiting"
	RoomPlaying      RoomStatus = "playing"
	RoomFinished     RoomStatus = "finished"
	RoomDisconnected RoomStatus = "disconnected"
)

// Room is the local view of a relay-managed pairing.
type Room struct {
	ID     string     `json:"id"`
	Color  Player     `json:"color"`
	Size   int        `json:"size"`
	Status RoomStatus `json:"status"`
}

func (that *Room) IsWaiting() bool {
	return that.Status == RoomWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == RoomPlaying
}

// IsOver - reports whether the room reached a terminal status.
func (that *Room) IsOver() bool {
	return that.Status == RoomFinished || that.Status == RoomDisconnected
}

// OpenRoom is one entry of the lobby listing. Never cached.
type OpenRoom struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
}
