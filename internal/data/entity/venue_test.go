package entity

import (
	"testing"
	"time"
)

func TestHourRangeMinutes(t *testing.T) {
	openMin, closeMin, err := (&HourRange{Open: "09:00", Close: "23:00"}).Minutes()
	if err != nil {
		t.Fatalf("Minutes: %v", err)
	}
	if openMin != 540 || closeMin != 1380 {
		t.Errorf("Minutes = (%d, %d), want (540, 1380)", openMin, closeMin)
	}

	if _, _, err := (&HourRange{Open: "bad", Close: "23:00"}).Minutes(); err == nil {
		t.Error("Minutes with malformed open clock: want error")
	}
}

func TestWorkingHoursForDay(t *testing.T) {
	hours := WorkingHours{
		"monday": {Open: "08:00", Close: "20:00"},
	}

	if got := hours.ForDay(time.Monday); got == nil || got.Open != "08:00" {
		t.Errorf("ForDay(Monday) = %v, want the monday window", got)
	}
	if got := hours.ForDay(time.Sunday); got != nil {
		t.Errorf("ForDay(Sunday) = %v, want nil for a closed day", got)
	}

	var none WorkingHours
	if got := none.ForDay(time.Monday); got != nil {
		t.Errorf("nil schedule ForDay = %v, want nil", got)
	}
}

func TestUniformWorkingHours(t *testing.T) {
	hours := UniformWorkingHours("09:00", "23:00")

	if len(hours) != 7 {
		t.Fatalf("UniformWorkingHours has %d days, want 7", len(hours))
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		window := hours.ForDay(day)
		if window == nil {
			t.Fatalf("ForDay(%s) = nil, want a window", day)
		}
		if window.Open != "09:00" || window.Close != "23:00" {
			t.Errorf("ForDay(%s) = %+v, want 09:00-23:00", day, window)
		}
	}
}

func TestVenueHasField(t *testing.T) {
	tests := []struct {
		name       string
		fieldCount int
		field      int
		want       bool
	}{
		{name: "first field", fieldCount: 3, field: 1, want: true},
		{name: "last field", fieldCount: 3, field: 3, want: true},
		{name: "beyond count", fieldCount: 3, field: 4, want: false},
		{name: "zero field", fieldCount: 3, field: 0, want: false},
		{name: "negative field", fieldCount: 3, field: -1, want: false},
		{name: "unset count has one field", fieldCount: 0, field: 1, want: true},
		{name: "unset count lacks second field", fieldCount: 0, field: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Venue{FieldCount: tt.fieldCount}
			if got := v.HasField(tt.field); got != tt.want {
				t.Errorf("HasField(%d) with count %d = %v, want %v", tt.field, tt.fieldCount, got, tt.want)
			}
		})
	}
}
