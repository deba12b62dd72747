package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// DateOf truncates t to its calendar day. The result is in UTC so that day
// arithmetic is not affected by daylight saving transitions.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func today(c Clock) time.Time {
	return DateOf(c.Now())
}

var daysPerYear = decimal.RequireFromString("365.25")

// YearsBetween returns the whole days from start to end divided by 365.25,
// rounded half-to-even to the given number of decimal places.
func YearsBetween(start, end time.Time, places int) float64 {
	days := decimal.NewFromInt(dayNumber(end) - dayNumber(start))
	return days.Div(daysPerYear).RoundBank(int32(places)).InexactFloat64()
}

// dayNumber counts calendar days since the Unix epoch. DateOf yields a UTC
// midnight, so the division is exact. time.Duration spans only about 292 years.
func dayNumber(t time.Time) int64 {
	return DateOf(t).Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60
