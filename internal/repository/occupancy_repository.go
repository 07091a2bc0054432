package repository

import (
	"context"
	"database/sql"
	"time"

	"roompla/internal/model"
	"roompla/internal/service"
)

// OccupancyRepo provides room and occupancy persistence and implements
// service.Store. All timestamp columns are stored in UTC; the connection is
// opened with loc=UTC so scanned time.Time values come back in UTC as well.
type OccupancyRepo struct {
	db *sql.DB
}

// NewOccupancyRepo returns a new OccupancyRepo bound to the given database.
func NewOccupancyRepo(db *sql.DB) *OccupancyRepo { return &OccupancyRepo{db: db} }

// Rooms returns all rooms ordered by identifier.
func (r *OccupancyRepo) Rooms(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, max_occupancy, timezone FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *room)
	}
	return out, rows.Err()
}

// FindRoom returns the room with the given ID or ErrRoomNotFound.
func (r *OccupancyRepo) FindRoom(ctx context.Context, id string) (*model.Room, error) {
	return findRoom(ctx, r.db, id)
}

// ListOccupancies returns the occupancies of a room ordered by start time.
// from restricts to occupancies starting at or after it, to restricts to
// occupancies ending at or before it; either or both may be nil.
func (r *OccupancyRepo) ListOccupancies(ctx context.Context, roomID string, from, to *time.Time) ([]model.Occupancy, error) {
	q := "SELECT id, room, user_id, user_name, user_contact, `start`, `end` FROM occupancies WHERE room = ?"
	args := []interface{}{roomID}
	if from != nil {
		q += " AND `start` >= ?"
		args = append(args, from.UTC())
	}
	if to != nil {
		q += " AND `end` <= ?"
		args = append(args, to.UTC())
	}
	q += " ORDER BY `start`, id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Occupancy, 0)
	for rows.Next() {
		var o model.Occupancy
		if err := rows.Scan(&o.ID, &o.Room, &o.UserID, &o.UserName, &o.UserContact, &o.Start, &o.End); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// InTx runs fn inside a serializable transaction and commits when fn
// returns nil. Serializable isolation plus the locking count query in
// CountOverlapping keeps the capacity check and the subsequent write
// atomic with respect to concurrent bookings on the same room.
func (r *OccupancyRepo) InTx(ctx context.Context, fn func(tx service.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	if err := fn(&occupancyTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// occupancyTx implements service.Tx on top of one *sql.Tx.
type occupancyTx struct {
	tx *sql.Tx
}

func (t *occupancyTx) FindRoom(ctx context.Context, id string) (*model.Room, error) {
	return findRoom(ctx, t.tx, id)
}

// CountOverlapping counts occupancies of the room that strictly overlap
// [from, to), skipping excludeID when non-zero. FOR UPDATE locks the
// counted index range so a concurrent transaction cannot slip a new
// overlapping row past a check that already observed free capacity.
func (t *occupancyTx) CountOverlapping(ctx context.Context, roomID string, from, to time.Time, excludeID int64) (int, error) {
	q := "SELECT COUNT(*) FROM occupancies WHERE room = ? AND `start` < ? AND `end` > ?"
	args := []interface{}{roomID, to.UTC(), from.UTC()}
	if excludeID != 0 {
		q += " AND id <> ?"
		args = append(args, excludeID)
	}
	q += " FOR UPDATE"

	var n int
	if err := t.tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// InsertOccupancy stores a new occupancy and populates its generated ID.
func (t *occupancyTx) InsertOccupancy(ctx context.Context, o *model.Occupancy) error {
	const q = "INSERT INTO occupancies (room, user_id, user_name, user_contact, `start`, `end`) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := t.tx.ExecContext(ctx, q, o.Room, o.UserID, o.UserName, o.UserContact, o.Start.UTC(), o.End.UTC())
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

// UpdateOccupancyTimes moves the occupancy matching (id, room, owner) to a
// new range and returns the number of matched rows. The triple filter
// scopes the write to the owner; a mismatch simply matches nothing.
func (t *occupancyTx) UpdateOccupancyTimes(ctx context.Context, roomID string, id int64, ownerID string, start, end time.Time) (int64, error) {
	const q = "UPDATE occupancies SET `start` = ?, `end` = ? WHERE id = ? AND room = ? AND user_id = ?"
	result, err := t.tx.ExecContext(ctx, q, start.UTC(), end.UTC(), id, roomID, ownerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteOccupancy removes the occupancy matching (id, room, owner) and
// returns the number of matched rows.
func (t *occupancyTx) DeleteOccupancy(ctx context.Context, roomID string, id int64, ownerID string) (int64, error) {
	const q = `DELETE FROM occupancies WHERE id = ? AND room = ? AND user_id = ?`
	result, err := t.tx.ExecContext(ctx, q, id, roomID, ownerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ExportEntry pairs an occupancy with its room's timezone for the CSV
// export. An empty Timezone means UTC.
type ExportEntry struct {
	Occupancy model.Occupancy
	Timezone  string
}

// ListAllInRange returns all occupancies across rooms whose interval lies
// within [from, to], joined with the owning room's timezone and ordered by
// start time. It feeds the export command only.
func (r *OccupancyRepo) ListAllInRange(ctx context.Context, from, to time.Time) ([]ExportEntry, error) {
	const q = "SELECT o.id, o.room, o.user_id, o.user_name, o.user_contact, o.`start`, o.`end`, r.timezone " +
		"FROM occupancies o JOIN rooms r ON r.id = o.room " +
		"WHERE o.`start` >= ? AND o.`end` <= ? ORDER BY o.`start`, o.id"
	rows, err := r.db.QueryContext(ctx, q, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ExportEntry, 0)
	for rows.Next() {
		var e ExportEntry
		var tz sql.NullString
		if err := rows.Scan(&e.Occupancy.ID, &e.Occupancy.Room, &e.Occupancy.UserID,
			&e.Occupancy.UserName, &e.Occupancy.UserContact,
			&e.Occupancy.Start, &e.Occupancy.End, &tz); err != nil {
			return nil, err
		}
		if tz.Valid {
			e.Timezone = tz.String
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// queryRower is satisfied by both *sql.DB and *sql.Tx so room lookups can
// run inside or outside a transaction.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func findRoom(ctx context.Context, q queryRower, id string) (*model.Room, error) {
	const query = `SELECT id, max_occupancy, timezone FROM rooms WHERE id = ?`
	room, err := scanRoom(q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	return room, err
}

func scanRoom(s rowScanner) (*model.Room, error) {
	var room model.Room
	var tz sql.NullString
	if err := s.Scan(&room.ID, &room.MaxOccupancy, &tz); err != nil {
		return nil, err
	}
	if tz.Valid {
		zone := tz.String
		room.Timezone = &zone
	}
	return &room, nil
}
