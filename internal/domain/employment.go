package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// RecordDateLayout is the start date format used in persisted records, e.g. "Oct 24 2020".
const RecordDateLayout = "Jan 02 2006"

const (
	recordFieldCount = 4
	recordSeparator  = ","
)

// Employment is one position held by a person. All fields are validated on
// every write; the zero value is not usable, build one with NewEmployment or
// DefaultEmployment.
type Employment struct {
	title     string
	level     SupervisoryLevel
	startDate time.Time
	years     float64
	clock     Clock
}

// EmploymentOption customises construction and parsing.
type EmploymentOption func(*employmentOptions)

type employmentOptions struct {
	years *float64
	clock Clock
}

// WithYears sets the declared tenure instead of deriving it from the start date.
func WithYears(years float64) EmploymentOption {
	return func(o *employmentOptions) {
		o.years = &years
	}
}

// WithClock sets the source of "today" used for date checks and derived values.
func WithClock(c Clock) EmploymentOption {
	return func(o *employmentOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

func buildEmploymentOptions(opts []EmploymentOption) employmentOptions {
	o := employmentOptions{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewEmployment validates and builds an Employment. When no WithYears option is
// given, years is derived from startDate to today and rounded to one decimal.
func NewEmployment(title string, level SupervisoryLevel, startDate time.Time, opts ...EmploymentOption) (*Employment, error) {
	o := buildEmploymentOptions(opts)
	e := &Employment{clock: o.clock}

	if err := e.SetTitle(title); err != nil {
		return nil, err
	}
	if err := e.SetRank(level); err != nil {
		return nil, err
	}

	start := DateOf(startDate)
	if err := e.checkNotFuture(start); err != nil {
		return nil, err
	}
	e.startDate = start

	if o.years == nil {
		e.years = YearsBetween(start, today(e.clock), 1)
		return e, nil
	}
	if err := e.SetYears(*o.years); err != nil {
		return nil, err
	}
	return e, nil
}

// DefaultEmployment returns an "unknown" Entry position starting today with no tenure.
func DefaultEmployment(opts ...EmploymentOption) *Employment {
	o := buildEmploymentOptions(opts)
	return &Employment{
		title:     "unknown",
		level:     Entry,
		startDate: today(o.clock),
		years:     0,
		clock:     o.clock,
	}
}

func (e *Employment) Title() string {
	return e.title
}

func (e *Employment) Level() SupervisoryLevel {
	return e.level
}

func (e *Employment) StartDate() time.Time {
	return e.startDate
}

func (e *Employment) Years() float64 {
	return e.years
}

// EmploymentYears is the tenure from the start date to today, to two decimals.
// It is recomputed on every call.
func (e *Employment) EmploymentYears() float64 {
	return YearsBetween(e.startDate, today(e.clock), 2)
}

// SetTitle trims and stores title. Blank titles are rejected, as are titles
// that would break the one-line record form.
func (e *Employment) SetTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return newValidationError(ErrMissingValue, "Title must be provided.")
	}
	if strings.ContainsAny(trimmed, recordSeparator+"\r\n") {
		return newValidationError(ErrFormat, "Title %q must not contain a comma or line break.", trimmed)
	}
	e.title = trimmed
	return nil
}

// SetYears stores the declared tenure. Negative values are rejected.
func (e *Employment) SetYears(years float64) error {
	if math.IsNaN(years) || math.IsInf(years, 0) {
		return newValidationError(ErrInvalidRange, "Years %s is not a number.", formatYears(years))
	}
	if years < 0 {
		return newValidationError(ErrInvalidRange, "Years %s is less than 0. Years must be positive.", formatYears(years))
	}
	e.years = years
	return nil
}

// SetRank changes the supervisory level. Undeclared levels are rejected.
func (e *Employment) SetRank(level SupervisoryLevel) error {
	if err := validateLevel(level); err != nil {
		return err
	}
	e.level = level
	return nil
}

// CorrectStartDate replaces the start date and recomputes years from it, as if
// the position were still held today. Any explicit years value is overwritten.
func (e *Employment) CorrectStartDate(startDate time.Time) error {
	start := DateOf(startDate)
	if err := e.checkNotFuture(start); err != nil {
		return err
	}
	e.startDate = start
	e.years = YearsBetween(start, today(e.clock), 1)
	return nil
}

// Clone returns an independent copy sharing only the clock.
func (e *Employment) Clone() *Employment {
	c := *e
	return &c
}

// String renders the persisted record form: title,level,start date,years.
func (e *Employment) String() string {
	return strings.Join([]string{
		e.title,
		e.level.String(),
		e.startDate.Format(RecordDateLayout),
		formatYears(e.years),
	}, recordSeparator)
}

func (e *Employment) checkNotFuture(start time.Time) error {
	if start.After(today(e.clock)) {
		return newValidationError(ErrTemporalConstraint, "The start date %s is in the future.", start.Format(RecordDateLayout))
	}
	return nil
}

// ParseEmployment reads a record produced by Employment.String. The line must
// have exactly four comma separated fields; the parsed years value is kept as
// given, including zero.
func ParseEmployment(line string, opts ...EmploymentOption) (*Employment, error) {
	fields := strings.Split(line, recordSeparator)
	if len(fields) != recordFieldCount {
		return nil, newValidationError(ErrFormat, "Invalid record format: %s", line)
	}

	level, err := ParseSupervisoryLevel(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, newFormatError(err, "Invalid supervisory level %q in record: %s", strings.TrimSpace(fields[1]), line)
	}

	start, err := time.Parse(RecordDateLayout, strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, newFormatError(err, "Invalid start date %q in record: %s", strings.TrimSpace(fields[2]), line)
	}

	years, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return nil, newFormatError(err, "Invalid years %q in record: %s", strings.TrimSpace(fields[3]), line)
	}

	parseOpts := make([]EmploymentOption, 0, len(opts)+1)
	parseOpts = append(parseOpts, opts...)
	parseOpts = append(parseOpts, WithYears(years))
	return NewEmployment(fields[0], level, start, parseOpts...)
}

// TryParseEmployment is ParseEmployment without the error detail.
func TryParseEmployment(line string, opts ...EmploymentOption) (*Employment, bool) {
	e, err := ParseEmployment(line, opts...)
	if err != nil {
		return nil, false
	}
	return e, true
}

func formatYears(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64)
}
