package service

import (
	"context"
	"time"

	"roompla/internal/model"
)

// Store is the storage surface the booking core operates on. It is
// implemented by repository.OccupancyRepo; tests provide an in-memory fake.
type Store interface {
	// Rooms returns all rooms ordered by identifier.
	Rooms(ctx context.Context) ([]model.Room, error)
	// FindRoom returns a room by ID or repository.ErrRoomNotFound.
	FindRoom(ctx context.Context, id string) (*model.Room, error)
	// ListOccupancies returns the occupancies of a room, optionally
	// restricted to start >= from and/or end <= to.
	ListOccupancies(ctx context.Context, roomID string, from, to *time.Time) ([]model.Occupancy, error)
	// InTx runs fn inside one transaction with isolation strong enough to
	// serialize concurrent capacity checks and writes on the same rows.
	// fn returning an error rolls the transaction back.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the transactional view handed to InTx callbacks. All reads observe
// writes made earlier in the same transaction.
type Tx interface {
	overlapCounter
	FindRoom(ctx context.Context, id string) (*model.Room, error)
	InsertOccupancy(ctx context.Context, o *model.Occupancy) error
	// UpdateOccupancyTimes moves the occupancy matching (id, room, owner)
	// to the new range and returns how many rows matched. A zero count
	// means the occupancy does not exist, lives in another room, or
	// belongs to someone else; the triple filter is what authorizes the
	// write.
	UpdateOccupancyTimes(ctx context.Context, roomID string, id int64, ownerID string, start, end time.Time) (int64, error)
	// DeleteOccupancy removes the occupancy matching (id, room, owner)
	// and returns how many rows matched.
	DeleteOccupancy(ctx context.Context, roomID string, id int64, ownerID string) (int64, error)
}

// Caller identifies the authenticated user a booking is made for. The name
// and contact are denormalized into the occupancy row.
type Caller struct {
	ID      string
	Name    string
	Contact string
}

// OccupancyService orchestrates parse, validation, capacity check and
// persistence for room occupancies.
type OccupancyService struct {
	Store Store
}

// NewOccupancyService returns an OccupancyService bound to the given store.
func NewOccupancyService(store Store) *OccupancyService {
	if store == nil {
		panic("nil store passed to NewOccupancyService")
	}
	return &OccupancyService{Store: store}
}

// parseHour parses an RFC3339 timestamp and rounds it to the nearest full
// hour in UTC. Halves round up (09:30 becomes 10:00), matching Go's
// time.Round. Rounding an already aligned timestamp is a no-op.
func parseHour(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, ErrBadTimestamp
	}
	return t.Round(time.Hour).UTC(), nil
}

// Create books the room for [start, end) on behalf of the caller. Both
// bounds are parsed from RFC3339 and rounded to full hours first. It
// returns the stored occupancy, or ErrBadTimestamp / ErrInvalidRange /
// repository.ErrRoomNotFound / ErrRoomFull.
func (s *OccupancyService) Create(ctx context.Context, roomID string, caller Caller, startRaw, endRaw string) (*model.Occupancy, error) {
	start, err := parseHour(startRaw)
	if err != nil {
		return nil, err
	}
	end, err := parseHour(endRaw)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	var created *model.Occupancy
	err = s.Store.InTx(ctx, func(tx Tx) error {
		room, err := tx.FindRoom(ctx, roomID)
		if err != nil {
			return err
		}
		ok, err := available(ctx, tx, room, start, end, 0)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomFull
		}
		o := &model.Occupancy{
			Room:        room.ID,
			UserID:      caller.ID,
			UserName:    caller.Name,
			UserContact: caller.Contact,
			Start:       start,
			End:         end,
		}
		if err := tx.InsertOccupancy(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update moves an existing occupancy to a new time range. The occupancy
// itself is excluded from the capacity check so that keeping (or shrinking)
// the current slot never conflicts with itself. When the caller does not
// own the occupancy the update matches zero rows and succeeds without
// effect; ownership mismatches are deliberately indistinguishable from
// missing rows.
func (s *OccupancyService) Update(ctx context.Context, roomID string, occupancyID int64, caller Caller, startRaw, endRaw string) error {
	start, err := parseHour(startRaw)
	if err != nil {
		return err
	}
	end, err := parseHour(endRaw)
	if err != nil {
		return err
	}
	if !end.After(start) {
		return ErrInvalidRange
	}

	return s.Store.InTx(ctx, func(tx Tx) error {
		room, err := tx.FindRoom(ctx, roomID)
		if err != nil {
			return err
		}
		ok, err := available(ctx, tx, room, start, end, occupancyID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomFull
		}
		// Zero matched rows is not an error, see above.
		_, err = tx.UpdateOccupancyTimes(ctx, room.ID, occupancyID, caller.ID, start, end)
		return err
	})
}

// Delete removes the caller's occupancy. Deletion is idempotent: deleting
// an occupancy that does not exist, lives in another room, or belongs to
// another user matches zero rows and reports success.
func (s *OccupancyService) Delete(ctx context.Context, roomID string, occupancyID int64, caller Caller) error {
	return s.Store.InTx(ctx, func(tx Tx) error {
		_, err := tx.DeleteOccupancy(ctx, roomID, occupancyID, caller.ID)
		return err
	})
}

// List returns the occupancies of a room, optionally narrowed by rounded
// start/end filters (each independently optional, passed as empty strings
// when absent). Entries not owned by the caller are anonymized before
// being returned: the time range stays visible, the identity does not.
func (s *OccupancyService) List(ctx context.Context, roomID string, callerID string, startRaw, endRaw string) ([]model.Occupancy, error) {
	var from, to *time.Time
	if startRaw != "" {
		t, err := parseHour(startRaw)
		if err != nil {
			return nil, err
		}
		from = &t
	}
	if endRaw != "" {
		t, err := parseHour(endRaw)
		if err != nil {
			return nil, err
		}
		to = &t
	}
	if from != nil && to != nil && !to.After(*from) {
		return nil, ErrInvalidRange
	}

	room, err := s.Store.FindRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	occupancies, err := s.Store.ListOccupancies(ctx, room.ID, from, to)
	if err != nil {
		return nil, err
	}
	for i := range occupancies {
		if !occupancies[i].OwnedBy(callerID) {
			occupancies[i].Anonymize()
		}
	}
	return occupancies, nil
}

// Rooms returns all rooms ordered by identifier. Rooms carry no personal
// data, so no redaction applies.
func (s *OccupancyService) Rooms(ctx context.Context) ([]model.Room, error) {
	return s.Store.Rooms(ctx)
}
