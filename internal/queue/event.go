// Package queue defines the message payloads exchanged over the broker and
// the background consumer that records them.
package queue

// OccupancyBookedEvent is published after a new occupancy has been
// committed. It carries enough information for downstream consumers to log
// or notify without querying the primary database. Identity fields are the
// booking user's own; nothing in the event belongs to other users, so no
// redaction applies.
type OccupancyBookedEvent struct {
	OccupancyID int64  `json:"occupancy_id"`
	Room        string `json:"room"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Start       string `json:"start"`     // RFC3339, UTC
	End         string `json:"end"`       // RFC3339, UTC
	BookedAt    string `json:"booked_at"` // RFC3339, UTC
}
