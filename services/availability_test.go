package services

import (
	"testing"
	"time"

	"retreat-booking-server/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"disjoint before", "2026-09-01", "2026-09-03", "2026-09-05", "2026-09-07", false},
		{"disjoint after", "2026-09-10", "2026-09-12", "2026-09-05", "2026-09-07", false},
		{"partial overlap", "2026-09-04", "2026-09-06", "2026-09-05", "2026-09-07", true},
		{"contained", "2026-09-05", "2026-09-06", "2026-09-01", "2026-09-10", true},
		{"containing", "2026-09-01", "2026-09-10", "2026-09-05", "2026-09-06", true},
		{"identical", "2026-09-05", "2026-09-07", "2026-09-05", "2026-09-07", true},
		// Boundaries are inclusive: starting on another booking's end date conflicts
		{"start touches end", "2026-09-07", "2026-09-09", "2026-09-05", "2026-09-07", true},
		{"end touches start", "2026-09-03", "2026-09-05", "2026-09-05", "2026-09-07", true},
		{"single day equal", "2026-09-05", "2026-09-05", "2026-09-05", "2026-09-05", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			if got != tt.want {
				t.Errorf("RangesOverlap(%s..%s, %s..%s) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestRangesOverlapSymmetric(t *testing.T) {
	aStart, aEnd := day("2026-09-04"), day("2026-09-06")
	bStart, bEnd := day("2026-09-05"), day("2026-09-07")

	if RangesOverlap(aStart, aEnd, bStart, bEnd) != RangesOverlap(bStart, bEnd, aStart, aEnd) {
		t.Error("RangesOverlap is not symmetric")
	}
}

func TestSpotsLeft(t *testing.T) {
	tests := []struct {
		name            string
		maxCapacity     int
		currentBookings int
		want            int
	}{
		{"empty service", 10, 0, 10},
		{"partially booked", 10, 8, 2},
		{"full", 10, 10, 0},
		{"overbooked clamps to zero", 10, 12, 0},
		{"zero capacity", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpotsLeft(tt.maxCapacity, tt.currentBookings); got != tt.want {
				t.Errorf("SpotsLeft(%d, %d) = %d, want %d",
					tt.maxCapacity, tt.currentBookings, got, tt.want)
			}
		})
	}
}

func TestFirstFullSlot(t *testing.T) {
	slots := []models.ServiceSchedule{
		{ID: 1, MaxCapacity: 10, CurrentBookings: 2},
		{ID: 2, MaxCapacity: 10, CurrentBookings: 8},
		{ID: 3, MaxCapacity: 10, CurrentBookings: 0},
	}

	t.Run("all slots have room", func(t *testing.T) {
		if full := firstFullSlot(slots, 2); full != nil {
			t.Errorf("firstFullSlot reported slot %d full for 2 people", full.ID)
		}
	})

	t.Run("one slot short rejects the range", func(t *testing.T) {
		full := firstFullSlot(slots, 3)
		if full == nil {
			t.Fatal("firstFullSlot found room for 3 people despite a slot with 2 spots")
		}
		if full.ID != 2 {
			t.Errorf("firstFullSlot returned slot %d, want 2", full.ID)
		}
		if full.SpotsLeft() != 2 {
			t.Errorf("SpotsLeft on the full slot = %d, want 2", full.SpotsLeft())
		}
	})

	t.Run("no slots means no slot constraint", func(t *testing.T) {
		if full := firstFullSlot(nil, 100); full != nil {
			t.Error("firstFullSlot rejected with no slots configured")
		}
	})
}

func TestOutsideValidity(t *testing.T) {
	from, until := day("2026-09-01"), day("2026-09-30")

	tests := []struct {
		name       string
		validFrom  *time.Time
		validUntil *time.Time
		start, end string
		want       bool
	}{
		{"no window", nil, nil, "2026-01-01", "2026-12-31", false},
		{"inside window", &from, &until, "2026-09-10", "2026-09-12", false},
		{"exactly the window", &from, &until, "2026-09-01", "2026-09-30", false},
		{"starts before window", &from, &until, "2026-08-30", "2026-09-05", true},
		{"ends after window", &from, &until, "2026-09-25", "2026-10-02", true},
		{"only lower bound", &from, nil, "2026-08-01", "2026-08-05", true},
		{"only upper bound", nil, &until, "2026-10-01", "2026-10-05", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := models.Service{ValidFrom: tt.validFrom, ValidUntil: tt.validUntil}
			if got := outsideValidity(&service, day(tt.start), day(tt.end)); got != tt.want {
				t.Errorf("outsideValidity(%s..%s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestComputeDeposit(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		pct   int
		want  float64
	}{
		{"twenty percent", 10000, 20, 2000},
		{"full deposit", 450, 100, 450},
		{"no deposit", 450, 0, 0},
		{"rounds to cents", 99.99, 33, 33.00},
		{"small amount", 85, 30, 25.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeDeposit(tt.total, tt.pct); got != tt.want {
				t.Errorf("ComputeDeposit(%v, %d) = %v, want %v", tt.total, tt.pct, got, tt.want)
			}
		})
	}
}
