package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeSlot = errors.New("start time must be before end time")
	ErrZeroTime        = errors.New("start and end times are required")
)

// TimeSlot is a half-open interval [start, end) in UTC. Two slots that only
// touch at an endpoint do not overlap.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if start.IsZero() || end.IsZero() {
		return TimeSlot{}, ErrZeroTime
	}
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}

	return TimeSlot{
		start: start.UTC(),
		end:   end.UTC(),
	}, nil
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

func (ts TimeSlot) Hours() float64 {
	return ts.Duration().Hours()
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) IsZero() bool {
	return ts.start.IsZero() && ts.end.IsZero()
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) MulUnits(units int32) Money {
	return Money{cents: m.cents * int64(units)}
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}
