package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "slot taken",
			err:      &utils.SlotTakenError{ReservationID: "abc", Date: time.Now(), StartTime: "10:00", EndTime: "11:00"},
			wantCode: http.StatusConflict,
		},
		{
			name:     "wrapped slot taken",
			err:      fmt.Errorf("create reservation: %w", &utils.SlotTakenError{ReservationID: "abc"}),
			wantCode: http.StatusConflict,
		},
		{
			name:     "venue not found",
			err:      fmt.Errorf("venue x: %w", utils.ErrVenueNotFound),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "reservation not found",
			err:      fmt.Errorf("reservation x: %w", utils.ErrNotFound),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "forbidden",
			err:      fmt.Errorf("reservation x: %w", utils.ErrForbidden),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "invalid interval",
			err:      fmt.Errorf("%w: start after end", utils.ErrInvalidInterval),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "past date",
			err:      fmt.Errorf("date x: %w", utils.ErrPastDateRejected),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "closed day",
			err:      fmt.Errorf("venue x on sunday: %w", utils.ErrClosedOnThisDay),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid transition",
			err:      fmt.Errorf("completed to cancelled: %w", utils.ErrInvalidTransition),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid field",
			err:      fmt.Errorf("field 9: %w", utils.ErrInvalidField),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "validation message",
			err:      fmt.Errorf("validation failed: Date: This field is required"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown error",
			err:      fmt.Errorf("connection reset"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(zap.NewNop(), rec, tt.err, "test op")

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}

			var body utils.Response
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status {
				t.Error("response status = true, want false for an error")
			}
		})
	}
}

func TestHandleServiceErrorSlotTakenPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &utils.SlotTakenError{
		ReservationID: "abc-123",
		Date:          time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "11:00",
	}
	handleServiceError(zap.NewNop(), rec, err, "create reservation")

	var body utils.Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	details, ok := body.Errors.(map[string]any)
	if !ok {
		t.Fatalf("errors payload is %T, want an object", body.Errors)
	}
	if details["reservation_id"] != "abc-123" {
		t.Errorf("reservation_id = %v, want abc-123", details["reservation_id"])
	}
	if details["date"] != "2026-09-07" {
		t.Errorf("date = %v, want 2026-09-07", details["date"])
	}
	if details["start_time"] != "10:00" || details["end_time"] != "11:00" {
		t.Errorf("interval = %v-%v, want 10:00-11:00", details["start_time"], details["end_time"])
	}
}
