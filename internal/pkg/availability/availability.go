package availability

import (
	"context"
	"time"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"github.com/VenueBookHQ/VenueBook/app/repository"
)

// Checker enumerates bookings that conflict with a requested date or time
// window. It only reports conflicts; whether they block a booking is the
// caller's policy (the booking workflow treats them as advisory).
type Checker struct {
	bookings repository.BookingRepository
}

// NewChecker creates an availability checker over the booking store.
func NewChecker(bookings repository.BookingRepository) *Checker {
	return &Checker{bookings: bookings}
}

// FindConflicts returns pending and confirmed bookings for the venue on the
// same calendar day as date. When both startTime and endTime are given
// ("HH:MM"), the set is narrowed to bookings whose interval overlaps.
func (c *Checker) FindConflicts(ctx context.Context, venueID uint, date time.Time, startTime, endTime string) ([]models.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	sameDay, err := c.bookings.FindByVenueAndDay(ctx, venueID, dayStart, dayEnd,
		[]string{models.BookingStatusPending, models.BookingStatusConfirmed})
	if err != nil {
		return nil, err
	}

	if startTime == "" || endTime == "" {
		return sameDay, nil
	}

	conflicts := make([]models.Booking, 0, len(sameDay))
	for _, b := range sameDay {
		if Overlaps(b.StartTime, b.EndTime, startTime, endTime) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}

// Overlaps reports whether two half-open "HH:MM" intervals intersect.
// Zero-padded 24h strings compare lexicographically in time order.
func Overlaps(existingStart, existingEnd, requestedStart, requestedEnd string) bool {
	return existingStart < requestedEnd && existingEnd > requestedStart
}
