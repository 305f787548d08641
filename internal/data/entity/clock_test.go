package entity

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		clock   string
		want    int
		wantErr bool
	}{
		{name: "midnight", clock: "00:00", want: 0},
		{name: "morning", clock: "09:00", want: 540},
		{name: "half hour", clock: "10:30", want: 630},
		{name: "last minute", clock: "23:59", want: 1439},
		{name: "hour too large", clock: "24:00", wantErr: true},
		{name: "minute too large", clock: "10:60", wantErr: true},
		{name: "negative hour", clock: "-1:00", wantErr: true},
		{name: "missing colon", clock: "1000", wantErr: true},
		{name: "not a number", clock: "ab:cd", wantErr: true},
		{name: "empty", clock: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.clock)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) = %d, want error", tt.clock, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.clock, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.clock, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{630, "10:30"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.minutes); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, clock := range []string{"00:00", "07:15", "12:00", "23:59"} {
		minutes, err := ParseClock(clock)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", clock, err)
		}
		if got := FormatClock(minutes); got != clock {
			t.Errorf("round trip %q = %q", clock, got)
		}
	}
}
