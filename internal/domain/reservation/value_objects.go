package reservation

import (
	"fmt"
	"time"
)

// TimeSlot is the half-open requested interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps reports whether two half-open intervals intersect.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// HasEnded reports whether the interval's end has passed.
func (ts TimeSlot) HasEnded(now time.Time) bool {
	return !now.Before(ts.end)
}

// ValidateNoticeAt enforces the advance-notice minimum: the event must start
// at least noticeDays days after now.
func (ts TimeSlot) ValidateNoticeAt(now time.Time, noticeDays int) error {
	if noticeDays < 0 {
		noticeDays = 0
	}
	if ts.start.Before(now.AddDate(0, 0, noticeDays)) {
		return ErrNoticeNotMet
	}
	return nil
}

// ToTstzrange renders the slot as a half-open postgres range literal.
func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// Contact carries the requester-supplied contact and event descriptor
// fields. Exposure on the public calendar is gated by the reservation's
// public flag.
type Contact struct {
	EventName    string
	Organization string
	Name         string
	Email        string
	Phone        string
}
