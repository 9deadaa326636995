package repository

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// CompleteElapsed marks confirmed reservations whose window has fully passed
// as completed. Selection and update run as two steps so the affected IDs are
// available for logging by the caller if needed.
func (r *ReservationRepository) CompleteElapsed(now time.Time) (int64, error) {
	rows, err := r.DB.Query(
		`SELECT id FROM reservations WHERE status = 'confirmed' AND end_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("error querying elapsed reservations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("error after iterating rows: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.DB.Exec(
		`UPDATE reservations SET status = 'completed', updated_at = $1 WHERE id = ANY($2)`,
		now, pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("error completing reservations: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return int64(len(ids)), nil
	}
	return affected, nil
}
