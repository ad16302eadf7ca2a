package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to rejected", BookingStatusPending, BookingStatusRejected, true},
		{"pending to completed skips confirmation", BookingStatusPending, BookingStatusCompleted, false},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to pending goes backwards", BookingStatusConfirmed, BookingStatusPending, false},
		{"cancelled cannot be revived", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusPending, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
		{"rejected is terminal", BookingStatusRejected, BookingStatusConfirmed, false},
		{"self transition", BookingStatusPending, BookingStatusPending, false},
		{"unknown source", BookingStatus("DRAFT"), BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanTransitionPayment(t *testing.T) {
	tests := []struct {
		name string
		from PaymentStatus
		to   PaymentStatus
		want bool
	}{
		{"pending to pending approval", PaymentStatusPending, PaymentStatusPendingApproval, true},
		{"pending straight to confirmed", PaymentStatusPending, PaymentStatusConfirmed, false},
		{"approval to confirmed", PaymentStatusPendingApproval, PaymentStatusConfirmed, true},
		{"approval to rejected", PaymentStatusPendingApproval, PaymentStatusRejected, true},
		{"confirmed is terminal", PaymentStatusConfirmed, PaymentStatusRejected, false},
		{"rejected allows re-upload", PaymentStatusRejected, PaymentStatusPendingApproval, true},
		{"rejected straight to confirmed", PaymentStatusRejected, PaymentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionPayment(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionPayment(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsValidBookingStatus(t *testing.T) {
	for _, valid := range []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusCompleted, BookingStatusRejected,
	} {
		if !IsValidBookingStatus(valid) {
			t.Errorf("IsValidBookingStatus(%s) = false", valid)
		}
	}

	for _, invalid := range []BookingStatus{"", "pending", "DRAFT", "ARCHIVED"} {
		if IsValidBookingStatus(invalid) {
			t.Errorf("IsValidBookingStatus(%q) = true", invalid)
		}
	}
}

func TestBookingIsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingStatusPending, true},
		{BookingStatusConfirmed, true},
		{BookingStatusCancelled, false},
		{BookingStatusCompleted, false},
		{BookingStatusRejected, false},
	}

	for _, tt := range tests {
		b := Booking{Status: tt.status}
		if got := b.IsActive(); got != tt.want {
			t.Errorf("Booking{Status: %s}.IsActive() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestScheduleSpotsLeft(t *testing.T) {
	s := ServiceSchedule{MaxCapacity: 12, CurrentBookings: 9}
	if got := s.SpotsLeft(); got != 3 {
		t.Errorf("SpotsLeft() = %d, want 3", got)
	}

	over := ServiceSchedule{MaxCapacity: 5, CurrentBookings: 7}
	if got := over.SpotsLeft(); got != 0 {
		t.Errorf("SpotsLeft() on overbooked slot = %d, want 0", got)
	}
}
