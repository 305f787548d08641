package response

import (
	"time"

	"pitch-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID            string                   `json:"id"`
	Code          string                   `json:"code"`
	VenueID       string                   `json:"venue_id"`
	VenueName     string                   `json:"venue_name,omitempty"`
	FieldNumber   int                      `json:"field_number"`
	UserID        string                   `json:"user_id"`
	Date          string                   `json:"date"`
	StartTime     string                   `json:"start_time"`
	EndTime       string                   `json:"end_time"`
	Price         float64                  `json:"price"`
	Currency      string                   `json:"currency,omitempty"`
	Status        entity.ReservationStatus `json:"status"`
	PaymentStatus entity.PaymentStatus     `json:"payment_status"`
	Participants  []string                 `json:"participants,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

// Helper converters
func ReservationToResponse(res *entity.Reservation, venueName, currency string) *ReservationResponse {
	participants := make([]string, len(res.Participants))
	for i, p := range res.Participants {
		participants[i] = p.String()
	}

	return &ReservationResponse{
		ID:            res.ID.String(),
		Code:          res.Code,
		VenueID:       res.VenueID.String(),
		VenueName:     venueName,
		FieldNumber:   res.FieldNumber,
		UserID:        res.UserID.String(),
		Date:          res.Date.Format("2006-01-02"),
		StartTime:     entity.FormatClock(res.StartMin),
		EndTime:       entity.FormatClock(res.EndMin),
		Price:         res.Price,
		Currency:      currency,
		Status:        res.Status,
		PaymentStatus: res.PaymentStatus,
		Participants:  participants,
		Notes:         res.Notes,
		CreatedAt:     res.CreatedAt,
	}
}
