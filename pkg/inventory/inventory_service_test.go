package inventory

import (
	"testing"
	"time"
)

func TestDetermineStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		expiryDate *time.Time
		want       string
	}{
		{"no expiry date", nil, "Safe"},
		{"expired yesterday", timePtr(now.AddDate(0, 0, -1)), "Expired"},
		{"expires tomorrow", timePtr(now.AddDate(0, 0, 1)), "Warning"},
		{"expires in two days", timePtr(now.AddDate(0, 0, 2)), "Warning"},
		{"expires next week", timePtr(now.AddDate(0, 0, 7)), "Safe"},
		{"expires next year", timePtr(now.AddDate(1, 0, 0)), "Safe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineStatus(tt.expiryDate); got != tt.want {
				t.Errorf("DetermineStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
