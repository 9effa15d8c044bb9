package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves a spot for a renter over [StartDate, EndDate).
// Both dates are calendar dates stored as UTC midnight.
type Booking struct {
	ID        uuid.UUID
	SpotID    uuid.UUID
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	User      *User // populated on owner reads only
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booking's stay as a DateRange.
func (b Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// DateRange is a half-open [Start, End) span of calendar days.
// The check-out day is not part of the stay.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates start and end to calendar dates in UTC.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: CalendarDate(start), End: CalendarDate(end)}
}

// CalendarDate drops the clock part of t, keeping its year, month and day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Valid reports whether End is strictly after Start.
func (r DateRange) Valid() bool {
	return r.End.After(r.Start)
}

// Overlaps reports whether r and o share at least one day.
// Identical start or end dates always overlap; back-to-back ranges
// (r.End equal to o.Start) do not.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

// Booking conflict messages, keyed by the field they are reported under.
const (
	msgEndNotAfterStart = "endDate cannot be on or before startDate"
	msgStartConflict    = "Start date conflicts with an existing booking"
	msgEndConflict      = "End date conflicts with an existing booking"
)

// CheckBooking decides whether candidate can be booked given the existing
// bookings of the same spot.
//
// It returns a validation FieldError when candidate is empty or inverted, a
// conflict FieldError naming startDate and/or endDate when candidate overlaps
// any existing booking, and nil otherwise. startDate is implicated when the
// candidate starts inside an existing stay, endDate when it ends inside one,
// and both when the candidate swallows an existing stay whole.
func CheckBooking(candidate DateRange, existing []Booking) error {
	if !candidate.Valid() {
		return NewValidationError(map[string]string{"endDate": msgEndNotAfterStart})
	}

	fields := map[string]string{}
	for _, b := range existing {
		other := b.Range()
		if !candidate.Overlaps(other) {
			continue
		}

		startInside := !candidate.Start.Before(other.Start) && candidate.Start.Before(other.End)
		endInside := candidate.End.After(other.Start) && !candidate.End.After(other.End)

		if startInside {
			fields["startDate"] = msgStartConflict
		}
		if endInside {
			fields["endDate"] = msgEndConflict
		}
		if !startInside && !endInside {
			fields["startDate"] = msgStartConflict
			fields["endDate"] = msgEndConflict
		}
	}

	if len(fields) > 0 {
		return NewConflictError(fields)
	}
	return nil
}
