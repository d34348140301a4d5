package usecases

import (
	"context"
	"fmt"
	"time"

	"appointment-service/internal/module/booking/models/entity"
	"appointment-service/internal/pkg/errors"
)

// overlaps is the interval conflict test: [aStart, aEnd) intersects
// [bStart, bEnd).
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// validateBookingWindow checks the service's lead and advance constraints.
func validateBookingWindow(service entity.Service, start, now time.Time) error {
	earliest := now.Add(time.Duration(service.MinAdvanceHours) * time.Hour)
	if start.Before(earliest) {
		return errors.BadRequest(fmt.Sprintf("booking requires at least %d hours notice", service.MinAdvanceHours))
	}

	latest := now.AddDate(0, 0, service.AdvanceBookingDays)
	if start.After(latest) {
		return errors.BadRequest(fmt.Sprintf("booking can be made at most %d days in advance", service.AdvanceBookingDays))
	}
	return nil
}

// withinWorkingHours reports whether [start, end) fits the staff member's
// working interval for that day. Bookings crossing midnight never fit.
func withinWorkingHours(schedule entity.StaffSchedule, start, end time.Time) bool {
	if !schedule.IsAvailable {
		return false
	}

	open, err := minutesOfDay(schedule.StartTime)
	if err != nil {
		return false
	}
	closing, err := minutesOfDay(schedule.EndTime)
	if err != nil {
		return false
	}

	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()
	if !sameDay(start, end) {
		if end.Sub(start) > 24*time.Hour || endMinutes != 0 {
			return false
		}
		endMinutes = 24 * 60
	}

	return startMinutes >= open && endMinutes <= closing
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func minutesOfDay(value string) (int, error) {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		t, err = time.Parse("15:04", value)
		if err != nil {
			return 0, err
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// allocateStaff picks the staff member for the requested interval. A
// requested staff member must be eligible and free; otherwise the first
// eligible staff member (ascending id, for reproducibility) without a
// conflict wins. The result is a candidate only: ReserveSlot re-checks the
// conflict under the row lock before inserting.
func (u *usecase) allocateStaff(ctx context.Context, service entity.Service, requestedStaffID int64, start, end time.Time) (int64, error) {
	eligible, err := u.repo.FindEligibleStaff(ctx, service.ID)
	if err != nil {
		return 0, err
	}

	if requestedStaffID != 0 {
		for _, staff := range eligible {
			if staff.ID != requestedStaffID {
				continue
			}
			free, err := u.staffFree(ctx, staff.ID, start, end)
			if err != nil {
				return 0, err
			}
			if !free {
				return 0, errors.Conflict("time slot not available")
			}
			return staff.ID, nil
		}
		return 0, errors.BadRequest("staff is not eligible for this service")
	}

	for _, staff := range eligible {
		free, err := u.staffFree(ctx, staff.ID, start, end)
		if err != nil {
			return 0, err
		}
		if free {
			return staff.ID, nil
		}
	}
	return 0, errors.Conflict("no staff available for this service")
}

// staffFree checks working hours and overlapping active bookings for one
// candidate.
func (u *usecase) staffFree(ctx context.Context, staffID int64, start, end time.Time) (bool, error) {
	schedule, err := u.repo.FindStaffSchedule(ctx, staffID, int(start.Weekday()))
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if !withinWorkingHours(schedule, start, end) {
		return false, nil
	}

	bookings, err := u.repo.FindActiveBookingsByStaff(ctx, staffID, start, end)
	if err != nil {
		return false, err
	}
	for _, booking := range bookings {
		if overlaps(booking.StartDatetime, booking.EndDatetime, start, end) {
			return false, nil
		}
	}
	return true, nil
}
