package service

import (
	"context"
	"time"

	"roompla/internal/model"
)

// overlapCounter counts stored occupancies of a room whose interval strictly
// overlaps [from, to), optionally ignoring one occupancy by ID (0 = none).
// The transaction types of the storage layer satisfy this interface; tests
// substitute an in-memory implementation.
type overlapCounter interface {
	CountOverlapping(ctx context.Context, roomID string, from, to time.Time, excludeID int64) (int, error)
}

// available reports whether the room can accept one more occupancy over
// every hour touched by [start, end]. It walks the range in one-hour steps
// and counts existing bookings that overlap each step; the first hour at or
// over capacity rejects the whole range.
//
// excludeID names an occupancy to leave out of the counts, so that an
// update does not collide with its own previous reservation.
//
// The check is read-only but must run inside the same transaction as the
// subsequent insert or update. Two concurrent bookings could otherwise both
// observe free capacity and both commit, overflowing the room.
func available(ctx context.Context, counter overlapCounter, room *model.Room, start, end time.Time, excludeID int64) (bool, error) {
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		n, err := counter.CountOverlapping(ctx, room.ID, t, t.Add(time.Hour), excludeID)
		if err != nil {
			return false, err
		}
		if n >= room.MaxOccupancy {
			return false, nil
		}
	}
	return true, nil
}
