package response

import (
	"time"

	"pitch-booking/internal/data/entity"
)

type VenueResponse struct {
	ID           string                       `json:"id"`
	Name         string                       `json:"name"`
	Location     string                       `json:"location"`
	HourlyPrice  float64                      `json:"hourly_price"`
	Currency     string                       `json:"currency"`
	FieldCount   int                          `json:"field_count"`
	WorkingHours map[string]*entity.HourRange `json:"working_hours,omitempty"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

type TimeSlotResponse struct {
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	Available         bool    `json:"available"`
	ReservationID     *string `json:"reservation_id,omitempty"`
	ReservationStatus *string `json:"reservation_status,omitempty"`
}

type AvailabilityResponse struct {
	VenueID string             `json:"venue_id"`
	Field   int                `json:"field"`
	Date    string             `json:"date"`
	Slots   []TimeSlotResponse `json:"slots"`
}

// Helper converters
func VenueToResponse(venue *entity.Venue) VenueResponse {
	return VenueResponse{
		ID:           venue.ID.String(),
		Name:         venue.Name,
		Location:     venue.Location,
		HourlyPrice:  venue.HourlyPrice,
		Currency:     venue.Currency,
		FieldCount:   venue.FieldCount,
		WorkingHours: venue.WorkingHours,
		CreatedAt:    venue.CreatedAt,
		UpdatedAt:    venue.UpdatedAt,
	}
}
