package request

import (
	"fmt"

	"pitch-booking/internal/data/entity"
)

type VenueRequest struct {
	Name         string                       `json:"name" validate:"required,min=2,max=100"`
	Location     string                       `json:"location" validate:"max=255"`
	HourlyPrice  float64                      `json:"hourly_price" validate:"required,gt=0"`
	Currency     string                       `json:"currency,omitempty" validate:"omitempty,len=3"`
	FieldCount   int                          `json:"field_count,omitempty" validate:"omitempty,min=1,max=10"`
	WorkingHours map[string]*entity.HourRange `json:"working_hours,omitempty"`
}

type VenueUpdateRequest struct {
	Name         *string                      `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location     *string                      `json:"location,omitempty" validate:"omitempty,max=255"`
	HourlyPrice  *float64                     `json:"hourly_price,omitempty" validate:"omitempty,gt=0"`
	Currency     *string                      `json:"currency,omitempty" validate:"omitempty,len=3"`
	FieldCount   *int                         `json:"field_count,omitempty" validate:"omitempty,min=1,max=10"`
	WorkingHours map[string]*entity.HourRange `json:"working_hours,omitempty"`
}

// validateHours rejects windows whose clocks do not parse or are inverted.
func validateHours(hours map[string]*entity.HourRange) (entity.WorkingHours, error) {
	parsed := make(entity.WorkingHours, len(hours))
	for day, window := range hours {
		if window == nil {
			continue
		}
		openMin, closeMin, err := window.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", day, err)
		}
		if openMin >= closeMin {
			return nil, fmt.Errorf("%s: open %s not before close %s", day, window.Open, window.Close)
		}
		parsed[day] = window
	}
	return parsed, nil
}

func (r *VenueRequest) ParsedWorkingHours() (entity.WorkingHours, error) {
	return validateHours(r.WorkingHours)
}

func (r *VenueUpdateRequest) ParsedWorkingHours() (entity.WorkingHours, error) {
	return validateHours(r.WorkingHours)
}
