package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Times of day are carried as minutes since midnight so that interval
// comparisons are plain integer math. "HH:MM" strings only exist at the
// API boundary.

const MinutesPerHour = 60

// ParseClock converts an "HH:MM" wall-clock string to minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock format %q, expected HH:MM", clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", clock, err)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", clock, err)
	}

	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour %d out of range in %q", hour, clock)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute %d out of range in %q", minute, clock)
	}

	return hour*MinutesPerHour + minute, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}
