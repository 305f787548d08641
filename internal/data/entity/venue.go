package entity

import (
	"strings"
	"time"
)

// HourRange is one weekday's opening window, wall-clock "HH:MM" as stored
// in the venue's working hours JSON.
type HourRange struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Minutes resolves the range to minutes since midnight.
func (h *HourRange) Minutes() (openMin, closeMin int, err error) {
	openMin, err = ParseClock(h.Open)
	if err != nil {
		return 0, 0, err
	}
	closeMin, err = ParseClock(h.Close)
	if err != nil {
		return 0, 0, err
	}
	return openMin, closeMin, nil
}

// WorkingHours maps lowercase weekday names ("monday".."sunday") to the
// opening window. A missing or nil entry means the venue is closed that day.
type WorkingHours map[string]*HourRange

// ForDay returns the opening window for the given weekday, nil when closed.
func (w WorkingHours) ForDay(day time.Weekday) *HourRange {
	if w == nil {
		return nil
	}
	return w[strings.ToLower(day.String())]
}

// UniformWorkingHours builds a schedule with the same window every day.
func UniformWorkingHours(open, close string) WorkingHours {
	hours := make(WorkingHours, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		hours[strings.ToLower(day.String())] = &HourRange{Open: open, Close: close}
	}
	return hours
}

type Venue struct {
	Base
	Name         string       `db:"name"`
	Location     string       `db:"location"`
	HourlyPrice  float64      `db:"hourly_price"`
	Currency     string       `db:"currency"`
	FieldCount   int          `db:"field_count"`
	WorkingHours WorkingHours `db:"working_hours"`
}

// HasField reports whether the numbered field exists at this venue.
// Fields are numbered 1..FieldCount; a venue with no explicit count has one.
func (v *Venue) HasField(field int) bool {
	count := v.FieldCount
	if count < 1 {
		count = 1
	}
	return field >= 1 && field <= count
}
