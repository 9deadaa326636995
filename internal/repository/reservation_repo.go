package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"roomreserve/internal/booking"
	"roomreserve/internal/service"
)

const reservationColumns = `id, code, room_id, start_at, end_at, status, created_at, updated_at`

// ReservationRepository stores reservations in Postgres. Booking commits run
// inside a transaction that takes a row lock on the room and re-runs the
// overlap check before inserting, so two concurrent bookings for overlapping
// windows serialize on the room and the loser gets a conflict.
type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) ListActive(roomID string) ([]booking.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1 AND status <> 'cancelled'
		ORDER BY start_at`
	rows, err := r.DB.Query(query, roomID)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations for room %s: %w", roomID, err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *ReservationRepository) Get(id string) (booking.Reservation, error) {
	row := r.DB.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Reservation{}, booking.ErrReservationNotFound
		}
		return booking.Reservation{}, err
	}
	return res, nil
}

func (r *ReservationRepository) List(filter service.ReservationFilter) ([]booking.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.RoomID != "" {
		query += " AND room_id = $" + strconv.Itoa(idx)
		args = append(args, filter.RoomID)
		idx++
	}
	if filter.Date != "" {
		query += " AND DATE(start_at AT TIME ZONE 'UTC') = $" + strconv.Itoa(idx)
		args = append(args, filter.Date)
		idx++
	}
	if filter.Status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, string(filter.Status))
		idx++
	}
	query += " ORDER BY start_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *ReservationRepository) Insert(res *booking.Reservation) error {
	return r.withRoomLock(res.RoomID, func(tx *sql.Tx) error {
		if err := r.checkConflict(tx, res, ""); err != nil {
			return err
		}
		return insertReservation(tx, res)
	})
}

func (r *ReservationRepository) Reschedule(oldID string, res *booking.Reservation) error {
	return r.withRoomLock(res.RoomID, func(tx *sql.Tx) error {
		var oldStatus string
		err := tx.QueryRow(`SELECT status FROM reservations WHERE id = $1 FOR UPDATE`, oldID).Scan(&oldStatus)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return booking.ErrReservationNotFound
			}
			return fmt.Errorf("error locking reservation %s: %w", oldID, err)
		}
		if oldStatus != string(booking.StatusConfirmed) {
			return booking.ErrAlreadyFinalized
		}
		if err := r.checkConflict(tx, res, oldID); err != nil {
			return err
		}
		if err := insertReservation(tx, res); err != nil {
			return err
		}
		_, err = tx.Exec(`UPDATE reservations SET status = 'cancelled', updated_at = $2 WHERE id = $1`, oldID, res.CreatedAt)
		if err != nil {
			return fmt.Errorf("error cancelling rescheduled reservation %s: %w", oldID, err)
		}
		return nil
	})
}

func (r *ReservationRepository) Cancel(id string, now time.Time) error {
	result, err := r.DB.Exec(
		`UPDATE reservations SET status = 'cancelled', updated_at = $2 WHERE id = $1 AND status = 'confirmed'`,
		id, now,
	)
	if err != nil {
		return fmt.Errorf("error cancelling reservation %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading cancel result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing updated: missing reservation or one that is no longer confirmed.
	var status string
	err = r.DB.QueryRow(`SELECT status FROM reservations WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.ErrReservationNotFound
	}
	if err != nil {
		return fmt.Errorf("error checking reservation %s: %w", id, err)
	}
	return booking.ErrAlreadyFinalized
}

// withRoomLock runs fn in a transaction holding a row lock on the room, the
// per-room mutual-exclusion scope the booking commit requires.
func (r *ReservationRepository) withRoomLock(roomID string, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error opening transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	if err := tx.QueryRow(`SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrRoomNotFound
		}
		return fmt.Errorf("error locking room %s: %w", roomID, err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// checkConflict is the SQL form of the half-open overlap test: a reservation
// blocks [start, end) iff its start is before end and its end after start.
// Back-to-back windows touch but do not overlap.
func (r *ReservationRepository) checkConflict(tx *sql.Tx, res *booking.Reservation, excludeID string) error {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1
		  AND status <> 'cancelled'
		  AND start_at < $3
		  AND end_at > $2`
	args := []interface{}{res.RoomID, res.Window.StartAt(), res.Window.EndAt()}
	if excludeID != "" {
		query += " AND id <> $4"
		args = append(args, excludeID)
	}
	query += " LIMIT 1"

	row := tx.QueryRow(query, args...)
	conflicting, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("error checking conflicts for room %s: %w", res.RoomID, err)
	}
	return &booking.ConflictError{RoomID: res.RoomID, Conflicting: conflicting}
}

func insertReservation(tx *sql.Tx, res *booking.Reservation) error {
	_, err := tx.Exec(`
		INSERT INTO reservations (id, code, room_id, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.ID, res.Code, res.RoomID,
		res.Window.StartAt(), res.Window.EndAt(),
		string(res.Status), res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting reservation %s: %w", res.ID, err)
	}
	return nil
}

func collectReservations(rows *sql.Rows) ([]booking.Reservation, error) {
	var out []booking.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return out, nil
}

func scanReservation(row rowScanner) (booking.Reservation, error) {
	var res booking.Reservation
	var startAt, endAt time.Time
	var rawStatus string
	err := row.Scan(&res.ID, &res.Code, &res.RoomID, &startAt, &endAt, &rawStatus, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Reservation{}, err
		}
		return booking.Reservation{}, fmt.Errorf("error scanning reservation row: %w", err)
	}
	window, err := booking.WindowFromInstants(startAt, endAt)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("reservation %s: %w", res.ID, err)
	}
	res.Window = window
	status, err := booking.ParseReservationStatus(rawStatus)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("reservation %s: %w", res.ID, err)
	}
	res.Status = status
	return res, nil
}
