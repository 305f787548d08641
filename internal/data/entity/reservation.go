package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// statusTransitions is the full set of legal status changes. Cancelled and
// completed are terminal.
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {ReservationStatusCompleted, ReservationStatusCancelled},
}

// CanTransitionTo reports whether the status change is in the transition table.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidReservationStatus reports whether the string names a known status.
func ValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	}
	return false
}

type Reservation struct {
	Base
	Code          string            `db:"code"`
	VenueID       uuid.UUID         `db:"venue_id"`
	FieldNumber   int               `db:"field_number"`
	UserID        uuid.UUID         `db:"user_id"`
	Date          time.Time         `db:"date"` // calendar day, truncated to midnight
	StartMin      int               `db:"start_min"`
	EndMin        int               `db:"end_min"`
	Price         float64           `db:"price"`
	Status        ReservationStatus `db:"status"`
	PaymentStatus PaymentStatus     `db:"payment_status"`
	Participants  []uuid.UUID       `db:"participants"`
	Notes         string            `db:"notes"`
}

// Overlaps tests the reservation against a candidate [startMin, endMin)
// interval. Intervals are half-open, so an interval starting exactly where
// another ends does not overlap it.
func (r *Reservation) Overlaps(startMin, endMin int) bool {
	return startMin < r.EndMin && r.StartMin < endMin
}

// FindConflict returns the first non-cancelled reservation overlapping the
// candidate interval, or nil. The reservation with id exclude is skipped,
// which lets a reschedule move over its own current window. Callers pass
// the set ordered by creation time so the earliest conflict is reported.
func FindConflict(existing []*Reservation, startMin, endMin int, exclude uuid.UUID) *Reservation {
	for _, r := range existing {
		if r.Status == ReservationStatusCancelled {
			continue
		}
		if r.ID == exclude {
			continue
		}
		if r.Overlaps(startMin, endMin) {
			return r
		}
	}
	return nil
}
