// Package testfixtures provides in-memory fakes shared by tests. The store
// mirrors the storage layer's contract closely enough that the booking core
// behaves identically on top of it: strict-overlap counting, inclusive
// list filters, and triple-filtered updates and deletes.
package testfixtures

import (
	"context"
	"sync"
	"time"

	"roompla/internal/model"
	"roompla/internal/repository"
	"roompla/internal/service"
)

// Store is an in-memory implementation of service.Store. Transactions are
// serialized with a mutex, which matches the isolation the real store
// guarantees per room.
type Store struct {
	mu     sync.Mutex
	rooms  map[string]model.Room
	occs   []model.Occupancy
	nextID int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{rooms: make(map[string]model.Room), nextID: 1}
}

// AddRoom registers a room.
func (s *Store) AddRoom(room model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
}

// Seed inserts an occupancy directly, bypassing the capacity check, and
// returns its assigned ID.
func (s *Store) Seed(o model.Occupancy) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextID
	s.nextID++
	s.occs = append(s.occs, o)
	return o.ID
}

// Occupancies returns a copy of all stored occupancies.
func (s *Store) Occupancies() []model.Occupancy {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Occupancy, len(s.occs))
	copy(out, s.occs)
	return out
}

func (s *Store) Rooms(ctx context.Context) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	// Deterministic order by identifier, as the real store guarantees.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ID < out[j-1].ID; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (s *Store) FindRoom(ctx context.Context, id string) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findRoom(id)
}

func (s *Store) findRoom(id string) (*model.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &room, nil
}

func (s *Store) ListOccupancies(ctx context.Context, roomID string, from, to *time.Time) ([]model.Occupancy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Occupancy, 0)
	for _, o := range s.occs {
		if o.Room != roomID {
			continue
		}
		if from != nil && o.Start.Before(*from) {
			continue
		}
		if to != nil && o.End.After(*to) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *Store) InTx(ctx context.Context, fn func(tx service.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]model.Occupancy, len(s.occs))
	copy(snapshot, s.occs)
	if err := fn(&tx{store: s}); err != nil {
		s.occs = snapshot // roll back
		return err
	}
	return nil
}

type tx struct {
	store *Store
}

func (t *tx) FindRoom(ctx context.Context, id string) (*model.Room, error) {
	return t.store.findRoom(id)
}

func (t *tx) CountOverlapping(ctx context.Context, roomID string, from, to time.Time, excludeID int64) (int, error) {
	n := 0
	for _, o := range t.store.occs {
		if o.Room != roomID || o.ID == excludeID {
			continue
		}
		if o.Start.Before(to) && o.End.After(from) {
			n++
		}
	}
	return n, nil
}

func (t *tx) InsertOccupancy(ctx context.Context, o *model.Occupancy) error {
	o.ID = t.store.nextID
	t.store.nextID++
	t.store.occs = append(t.store.occs, *o)
	return nil
}

func (t *tx) UpdateOccupancyTimes(ctx context.Context, roomID string, id int64, ownerID string, start, end time.Time) (int64, error) {
	for i := range t.store.occs {
		o := &t.store.occs[i]
		if o.ID == id && o.Room == roomID && o.UserID == ownerID {
			o.Start = start
			o.End = end
			return 1, nil
		}
	}
	return 0, nil
}

func (t *tx) DeleteOccupancy(ctx context.Context, roomID string, id int64, ownerID string) (int64, error) {
	for i := range t.store.occs {
		o := t.store.occs[i]
		if o.ID == id && o.Room == roomID && o.UserID == ownerID {
			t.store.occs = append(t.store.occs[:i], t.store.occs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
