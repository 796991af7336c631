package models

// RoomStatus is the stored occupancy state of a room. Available and Occupied
// are derived from active tenant counts; Maintenance is operator-asserted and
// never overwritten by a reconciliation pass.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

// Room is a rentable unit. Status is treated as a cache of a computed value.
type Room struct {
	ID       int        `json:"id"`
	RoomName string     `json:"roomName"`
	Capacity int        `json:"capacity"`
	Price    float64    `json:"price"`
	Status   RoomStatus `json:"status"`
}

// StatusUpdate is an intent to correct a stale room status. It is emitted by
// the reconciler and applied by the record store adapter, one write per room.
type StatusUpdate struct {
	RoomID   int        `json:"roomId"`
	RoomName string     `json:"roomName"`
	From     RoomStatus `json:"from"`
	To       RoomStatus `json:"to"`
}
