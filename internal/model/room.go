package model

// Room represents a bookable room as stored in the `rooms` table. Rooms are
// provisioned out of band and are immutable at runtime; the service only
// reads them.
//
// Fields:
//
//	ID           - primary key, a human-readable room name.
//	MaxOccupancy - how many occupancies may overlap any single hour.
//	Timezone     - optional IANA zone name, used only when exporting
//	               bookings for display; all stored times are UTC.
type Room struct {
	ID           string  `json:"id"`                 // rooms.id
	MaxOccupancy int     `json:"max_occupancy"`      // rooms.max_occupancy
	Timezone     *string `json:"timezone,omitempty"` // rooms.timezone (nullable)
}
