package model

import (
	"testing"
	"time"
)

func TestEventStatusDerivation(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"yesterday", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), EventPast},
		{"same day, earlier hour", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), EventUpcoming},
		{"tomorrow", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), EventUpcoming},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := Event{Date: tc.date}
			if got := e.Status(now); got != tc.want {
				t.Fatalf("Status(%v) = %q, want %q", tc.date, got, tc.want)
			}
		})
	}
}
