package services

import (
	"testing"
)

func TestResolveDeposit(t *testing.T) {
	floatPtr := func(f float64) *float64 { return &f }

	tests := []struct {
		name     string
		supplied *float64
		total    float64
		pct      int
		want     float64
	}{
		{"nil supplied uses percentage", nil, 10000, 20, 2000},
		{"exact supplied kept", floatPtr(2000), 10000, 20, 2000},
		{"supplied within tolerance kept", floatPtr(2000.50), 10000, 20, 2000.50},
		{"supplied off by too much recomputed", floatPtr(1500), 10000, 20, 2000},
		{"zero percentage", nil, 10000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveDeposit(tt.supplied, tt.total, tt.pct); got != tt.want {
				t.Errorf("resolveDeposit(%v, %v, %d) = %v, want %v",
					tt.supplied, tt.total, tt.pct, got, tt.want)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-09-15")
	if err != nil {
		t.Fatalf("ParseDay returned error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 9 || got.Day() != 15 {
		t.Errorf("ParseDay parsed %v", got)
	}

	for _, bad := range []string{"", "15-09-2026", "2026/09/15", "2026-09-15T10:00:00Z", "not-a-date"} {
		if _, err := ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q) accepted invalid input", bad)
		}
	}
}
