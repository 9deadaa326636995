package service

import (
	"fmt"
	"log"
	"time"
)

// JobService runs the scheduled lifecycle maintenance the HTTP layer never
// triggers on its own.
type JobService struct {
	store ReservationStore
	now   func() time.Time
}

func NewJobService(store ReservationStore, now func() time.Time) *JobService {
	if now == nil {
		now = time.Now
	}
	return &JobService{store: store, now: now}
}

// CompleteElapsedReservations transitions confirmed reservations whose
// window's end has passed to completed.
func (s *JobService) CompleteElapsedReservations() error {
	updated, err := s.store.CompleteElapsed(s.now().UTC())
	if err != nil {
		return fmt.Errorf("cron job: failed to complete elapsed reservations: %w", err)
	}
	if updated > 0 {
		log.Printf("Cron Job: marked %d reservations as completed", updated)
	}
	return nil
}
