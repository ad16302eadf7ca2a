package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
)

// Business-rule errors surfaced to handlers. Handlers map these onto
// 404 (not found) or 400 (rule rejection); anything else is a 500.
var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrNotBookable          = errors.New("service is not bookable")
	ErrDateConflict         = errors.New("the selected dates conflict with an existing booking")
	ErrInsufficientCapacity = errors.New("not enough spots available")
	ErrOutsideValidity      = errors.New("the selected dates are outside the service's validity window")
)

// RangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd] overlap.
// Boundaries are inclusive: a booking starting on another's end date conflicts.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// SpotsLeft returns remaining capacity, never negative
func SpotsLeft(maxCapacity, currentBookings int) int {
	spots := maxCapacity - currentBookings
	if spots < 0 {
		return 0
	}
	return spots
}

// ComputeDeposit derives the deposit from the total and the service's
// deposit percentage, rounded to cents
func ComputeDeposit(totalAmount float64, depositPercentage int) float64 {
	deposit := totalAmount * float64(depositPercentage) / 100
	return math.Round(deposit*100) / 100
}

// checkRangeConflicts queries PENDING/CONFIRMED bookings on the service whose
// interval overlaps the candidate range. The predicate is expressed as three
// OR'd cases (existing start inside candidate, existing end inside candidate,
// candidate contained in existing), which together equal the standard
// inclusive interval-overlap test.
func checkRangeConflicts(tx *gorm.DB, serviceID uint, start, end time.Time) (bool, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("service_id = ? AND status IN ?", serviceID,
			[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Where(
			tx.Where("start_date BETWEEN ? AND ?", start, end).
				Or("end_date BETWEEN ? AND ?", start, end).
				Or("start_date <= ? AND end_date >= ?", start, end),
		).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// outsideValidity reports whether [start, end] escapes the service's optional
// validity window
func outsideValidity(service *models.Service, start, end time.Time) bool {
	if service.ValidFrom != nil && start.Before(*service.ValidFrom) {
		return true
	}
	if service.ValidUntil != nil && end.After(*service.ValidUntil) {
		return true
	}
	return false
}

// checkRangeForService validates a candidate range against an already-loaded
// service: bookable, inside the validity window, no overlapping active
// booking. The booking transaction calls this after taking the service row
// lock, so the verdict cannot go stale before the insert.
func checkRangeForService(tx *gorm.DB, service *models.Service, start, end time.Time) error {
	if !service.IsBookable {
		return ErrNotBookable
	}
	if outsideValidity(service, start, end) {
		return ErrOutsideValidity
	}

	conflict, err := checkRangeConflicts(tx, service.ID, start, end)
	if err != nil {
		return err
	}
	if conflict {
		return ErrDateConflict
	}

	return nil
}

// firstFullSlot returns the first schedule slot that cannot take the requested
// headcount, or nil when every slot can
func firstFullSlot(slots []models.ServiceSchedule, people int) *models.ServiceSchedule {
	for i := range slots {
		if people > slots[i].SpotsLeft() {
			return &slots[i]
		}
	}
	return nil
}

// CheckDayAvailability computes remaining spots for a single date. When an
// active schedule slot exists for that date its counters win; otherwise the
// service-level counters apply. Both paths report spots alongside the verdict
// so callers can show "2 spots left" on rejection.
func CheckDayAvailability(serviceID uint, date time.Time, people int) (*models.AvailabilityResponse, error) {
	if people <= 0 {
		people = 1
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if !service.IsBookable {
		return &models.AvailabilityResponse{
			Available: false,
			Message:   "This service is not currently bookable",
		}, nil
	}

	day := date.Truncate(24 * time.Hour)

	spots := SpotsLeft(service.MaxCapacity, service.CurrentBookings)
	var schedule models.ServiceSchedule
	err := database.DB.
		Where("service_id = ? AND date = ? AND is_active = ?", serviceID, day, true).
		Order("start_time").
		First(&schedule).Error
	switch {
	case err == nil:
		spots = schedule.SpotsLeft()
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no explicit slot for that date, service counters apply
	default:
		return nil, err
	}

	if people > spots {
		return &models.AvailabilityResponse{
			Available:      false,
			AvailableSpots: spots,
			Message:        fmt.Sprintf("Only %d spot(s) left on %s", spots, day.Format("2006-01-02")),
		}, nil
	}

	return &models.AvailabilityResponse{
		Available:      true,
		AvailableSpots: spots,
		Message:        fmt.Sprintf("%d spot(s) available", spots),
	}, nil
}

// ScheduleAvailability is the per-slot availability for a service
type ScheduleAvailability struct {
	ScheduleID     uint   `json:"schedule_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	MaxCapacity    int    `json:"max_capacity"`
	AvailableSpots int    `json:"available_spots"`
}

// ListScheduleAvailability returns spots for every upcoming active slot of a
// service plus the aggregate, all derived from the same counters the booking
// path updates
func ListScheduleAvailability(serviceID uint) ([]ScheduleAvailability, int, error) {
	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrServiceNotFound
		}
		return nil, 0, err
	}

	var schedules []models.ServiceSchedule
	if err := database.DB.
		Where("service_id = ? AND is_active = ? AND date >= ?", serviceID, true, time.Now().Truncate(24*time.Hour)).
		Order("date, start_time").
		Find(&schedules).Error; err != nil {
		return nil, 0, err
	}

	out := make([]ScheduleAvailability, 0, len(schedules))
	total := 0
	for _, s := range schedules {
		spots := s.SpotsLeft()
		total += spots
		out = append(out, ScheduleAvailability{
			ScheduleID:     s.ID,
			Date:           s.Date.Format("2006-01-02"),
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			MaxCapacity:    s.MaxCapacity,
			AvailableSpots: spots,
		})
	}

	if len(schedules) == 0 {
		total = SpotsLeft(service.MaxCapacity, service.CurrentBookings)
	}

	return out, total, nil
}
