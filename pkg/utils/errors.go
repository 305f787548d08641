package utils

import (
	"errors"
	"fmt"
	"time"
)

// Recoverable error kinds returned by the services. Handlers map these to
// HTTP responses with errors.Is / errors.As, never by matching message text.
var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrInvalidField      = errors.New("field number outside venue range")
	ErrInvalidInterval   = errors.New("invalid time interval")
	ErrPastDateRejected  = errors.New("date is in the past")
	ErrClosedOnThisDay   = errors.New("venue is closed on this day")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrNotFound          = errors.New("reservation not found")
	ErrForbidden         = errors.New("not allowed")
)

// SlotTakenError reports a booking conflict with enough detail for the
// client to render the colliding reservation.
type SlotTakenError struct {
	ReservationID string
	Date          time.Time
	StartTime     string
	EndTime       string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("slot taken by reservation %s on %s %s-%s",
		e.ReservationID, e.Date.Format("2006-01-02"), e.StartTime, e.EndTime)
}
