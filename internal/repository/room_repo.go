package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"roomreserve/internal/booking"

	"github.com/lib/pq"
)

// RoomRepository reads the room catalog out of Postgres. Status strings are
// normalized to the booking enum here, at the adapter, so the engine never
// sees a loosely-cased value.
type RoomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{DB: db}
}

func (r *RoomRepository) ListRooms(location string, minCapacity int) ([]booking.Room, error) {
	query := `
	SELECT id, name, location, capacity, amenities, status
	FROM rooms
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if location != "" && location != booking.LocationAll {
		query += " AND location = $" + strconv.Itoa(idx)
		args = append(args, location)
		idx++
	}
	if minCapacity > 0 {
		query += " AND capacity >= $" + strconv.Itoa(idx)
		args = append(args, minCapacity)
		idx++
	}
	query += " ORDER BY id"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []booking.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating room rows: %w", err)
	}
	return rooms, nil
}

func (r *RoomRepository) GetRoom(id string) (booking.Room, error) {
	row := r.DB.QueryRow(`SELECT id, name, location, capacity, amenities, status FROM rooms WHERE id = $1`, id)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Room{}, booking.ErrRoomNotFound
		}
		return booking.Room{}, err
	}
	return room, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (booking.Room, error) {
	var room booking.Room
	var rawStatus string
	if err := row.Scan(&room.ID, &room.Name, &room.Location, &room.Capacity, pq.Array(&room.Amenities), &rawStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Room{}, err
		}
		return booking.Room{}, fmt.Errorf("error scanning room row: %w", err)
	}
	status, err := booking.ParseRoomStatus(rawStatus)
	if err != nil {
		return booking.Room{}, fmt.Errorf("room %s: %w", room.ID, err)
	}
	room.Status = status
	return room, nil
}
