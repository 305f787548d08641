package entity

import (
	"testing"

	"github.com/google/uuid"
)

func makeReservation(startMin, endMin int, status ReservationStatus) *Reservation {
	return &Reservation{
		Base:     Base{ID: uuid.New()},
		StartMin: startMin,
		EndMin:   endMin,
		Status:   status,
	}
}

func TestReservationOverlaps(t *testing.T) {
	// existing reservation holds [10:00, 11:00)
	res := makeReservation(600, 660, ReservationStatusConfirmed)

	tests := []struct {
		name     string
		startMin int
		endMin   int
		want     bool
	}{
		{name: "identical interval", startMin: 600, endMin: 660, want: true},
		{name: "candidate starts inside", startMin: 630, endMin: 690, want: true},
		{name: "candidate ends inside", startMin: 570, endMin: 630, want: true},
		{name: "candidate contains existing", startMin: 540, endMin: 720, want: true},
		{name: "candidate inside existing", startMin: 615, endMin: 645, want: true},
		{name: "ends exactly at start", startMin: 540, endMin: 600, want: false},
		{name: "starts exactly at end", startMin: 660, endMin: 720, want: false},
		{name: "entirely before", startMin: 480, endMin: 540, want: false},
		{name: "entirely after", startMin: 720, endMin: 780, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := res.Overlaps(tt.startMin, tt.endMin); got != tt.want {
				t.Errorf("Overlaps(%d, %d) = %v, want %v", tt.startMin, tt.endMin, got, tt.want)
			}
		})
	}
}

func TestFindConflict(t *testing.T) {
	booked := makeReservation(600, 660, ReservationStatusConfirmed)
	cancelled := makeReservation(600, 660, ReservationStatusCancelled)

	t.Run("reports overlapping reservation", func(t *testing.T) {
		got := FindConflict([]*Reservation{booked}, 630, 690, uuid.Nil)
		if got != booked {
			t.Fatalf("FindConflict = %v, want the booked reservation", got)
		}
	})

	t.Run("cancelled reservations do not block", func(t *testing.T) {
		if got := FindConflict([]*Reservation{cancelled}, 600, 660, uuid.Nil); got != nil {
			t.Fatalf("FindConflict = %v, want nil", got)
		}
	})

	t.Run("excluded reservation is skipped", func(t *testing.T) {
		if got := FindConflict([]*Reservation{booked}, 600, 660, booked.ID); got != nil {
			t.Fatalf("FindConflict = %v, want nil when moving over itself", got)
		}
	})

	t.Run("adjacent interval is free", func(t *testing.T) {
		if got := FindConflict([]*Reservation{booked}, 660, 720, uuid.Nil); got != nil {
			t.Fatalf("FindConflict = %v, want nil for adjacent interval", got)
		}
	})

	t.Run("earliest created wins", func(t *testing.T) {
		second := makeReservation(630, 690, ReservationStatusPending)
		got := FindConflict([]*Reservation{booked, second}, 600, 700, uuid.Nil)
		if got != booked {
			t.Fatalf("FindConflict = %v, want first reservation in creation order", got)
		}
	})
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{ReservationStatusPending, ReservationStatusConfirmed, true},
		{ReservationStatusPending, ReservationStatusCancelled, true},
		{ReservationStatusPending, ReservationStatusCompleted, false},
		{ReservationStatusConfirmed, ReservationStatusCompleted, true},
		{ReservationStatusConfirmed, ReservationStatusCancelled, true},
		{ReservationStatusConfirmed, ReservationStatusPending, false},
		{ReservationStatusCancelled, ReservationStatusPending, false},
		{ReservationStatusCancelled, ReservationStatusConfirmed, false},
		{ReservationStatusCompleted, ReservationStatusCancelled, false},
		{ReservationStatusCompleted, ReservationStatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidReservationStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled", "completed"} {
		if !ValidReservationStatus(s) {
			t.Errorf("ValidReservationStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "done", "PENDING", "canceled"} {
		if ValidReservationStatus(s) {
			t.Errorf("ValidReservationStatus(%q) = true, want false", s)
		}
	}
}
