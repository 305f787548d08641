package request

type CreateReservationRequest struct {
	// Venue accepts an opaque id or a venue name
	Venue        string   `json:"venue" validate:"required"`
	FieldNumber  int      `json:"field_number,omitempty" validate:"omitempty,min=1"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string   `json:"start_time" validate:"required"`
	EndTime      string   `json:"end_time" validate:"required"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Notes        string   `json:"notes,omitempty" validate:"max=500"`
	Participants []string `json:"participants,omitempty" validate:"omitempty,dive,uuid4"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type RescheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type UpdateReservationRequest struct {
	Date          *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime     *string  `json:"start_time,omitempty"`
	EndTime       *string  `json:"end_time,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	PaymentStatus *string  `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid cancelled"`
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
	Participants  []string `json:"participants,omitempty" validate:"omitempty,dive,uuid4"`
}
