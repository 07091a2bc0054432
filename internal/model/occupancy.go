package model

import "time"

// AnonymizedUser replaces the identity fields of occupancies that do not
// belong to the requesting user when listing a room. Every authenticated
// user may see how busy a room is, but not who booked it.
const AnonymizedUser = "<anonym>"

// Occupancy records a single reservation of a room for a whole-hour time
// range. The booking user's display name and contact are denormalized into
// the row at booking time so the record stays intact even if the account
// changes or disappears later.
//
// Start and End are stored in UTC and always aligned to full hours; End is
// strictly after Start.
//
// Fields:
//
//	ID          - auto-assigned primary key.
//	Room        - room being occupied (rooms.id).
//	UserID      - account that owns the booking.
//	UserName    - display name captured at booking time.
//	UserContact - contact string captured at booking time.
//	Start       - first occupied instant (inclusive).
//	End         - end of the occupied range (exclusive).
type Occupancy struct {
	ID          int64     `json:"id"`           // occupancies.id
	Room        string    `json:"room"`         // occupancies.room
	UserID      string    `json:"user_id"`      // occupancies.user_id
	UserName    string    `json:"user_name"`    // occupancies.user_name
	UserContact string    `json:"user_contact"` // occupancies.user_contact
	Start       time.Time `json:"start"`        // occupancies.start (UTC)
	End         time.Time `json:"end"`          // occupancies.end (UTC)
}

// Anonymize strips the owner's identity from the occupancy, leaving only
// the room and time range visible.
func (o *Occupancy) Anonymize() {
	o.UserID = AnonymizedUser
	o.UserName = AnonymizedUser
	o.UserContact = ""
}

// OwnedBy reports whether the occupancy belongs to the given user.
func (o *Occupancy) OwnedBy(userID string) bool { return o.UserID == userID }
