package jolt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ISO-8601 patterns for the temporal kinds. Decoding matches them in
// order: date, time, datetime, duration. Fewer fractional digits than the
// nine the encoder emits are accepted.
var (
	datePattern = regexp.MustCompile(
		`^(\d{4})-(\d{2})-(\d{2})$`)
	timePattern = regexp.MustCompile(
		`^(\d{2}):(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?(Z|[+-]\d{2}:\d{2})?$`)
	dateTimePattern = regexp.MustCompile(
		`^(\d{4})-(\d{2})-(\d{2})[T ](\d{2}):(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?(Z|[+-]\d{2}:\d{2})?$`)
	durationPattern = regexp.MustCompile(
		`^(-?)P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:\.(\d{1,9}))?S)?)?$`)
)

// Date is a calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate creates a [Date].
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Kind implements [Value].
func (Date) Kind() Kind { return KindDate }

// Equal implements [Value].
func (d Date) Equal(other Value) bool {
	o, ok := other.(Date)

	return ok && d == o
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time is a wall-clock time with nanosecond precision and an optional UTC
// offset. Nanos must be in [0, 1e9).
type Time struct {
	Hour   int
	Minute int
	Second int
	Nanos  int
	// Offset is the UTC offset in seconds; it is meaningful only when
	// HasOffset is set.
	Offset    int
	HasOffset bool
}

// NewTime creates a [Time] without a UTC offset.
func NewTime(hour, minute, second, nanos int) Time {
	return Time{Hour: hour, Minute: minute, Second: second, Nanos: nanos}
}

// WithOffset returns a copy of t carrying the given UTC offset in seconds.
func (t Time) WithOffset(seconds int) Time {
	t.Offset = seconds
	t.HasOffset = true

	return t
}

// Kind implements [Value].
func (Time) Kind() Kind { return KindTime }

// Equal implements [Value].
func (t Time) Equal(other Value) bool {
	o, ok := other.(Time)

	return ok && t == o
}

// String renders the time as HH:MM:SS, with nine fractional digits when
// the nanosecond component is nonzero, followed by the offset if present.
func (t Time) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%02d:%02d:%02d", t.Hour, t.Minute, t.Second)

	if t.Nanos != 0 {
		fmt.Fprintf(&sb, ".%09d", t.Nanos)
	}

	if t.HasOffset {
		sb.WriteString(formatOffset(t.Offset))
	}

	return sb.String()
}

// DateTime combines a [Date] and a [Time].
type DateTime struct {
	Date Date
	Time Time
}

// NewDateTime creates a [DateTime] without a UTC offset.
func NewDateTime(year, month, day, hour, minute, second, nanos int) DateTime {
	return DateTime{
		Date: NewDate(year, month, day),
		Time: NewTime(hour, minute, second, nanos),
	}
}

// WithOffset returns a copy of dt carrying the given UTC offset in seconds.
func (dt DateTime) WithOffset(seconds int) DateTime {
	dt.Time = dt.Time.WithOffset(seconds)

	return dt
}

// Kind implements [Value].
func (DateTime) Kind() Kind { return KindDateTime }

// Equal implements [Value].
func (dt DateTime) Equal(other Value) bool {
	o, ok := other.(DateTime)

	return ok && dt == o
}

// String renders the value as YYYY-MM-DDTHH:MM:SS.fffffffff with the
// offset appended if present. The fractional second is always emitted so
// the form stays distinct from a plain [Time].
func (dt DateTime) String() string {
	var sb strings.Builder

	sb.WriteString(dt.Date.String())
	sb.WriteByte('T')
	fmt.Fprintf(&sb, "%02d:%02d:%02d.%09d",
		dt.Time.Hour, dt.Time.Minute, dt.Time.Second, dt.Time.Nanos)

	if dt.Time.HasOffset {
		sb.WriteString(formatOffset(dt.Time.Offset))
	}

	return sb.String()
}

// Duration is an ISO-8601 duration. Months, days, and seconds are held
// separately because they do not interconvert. Nanos must be in [0, 1e9).
type Duration struct {
	Months  int64
	Days    int64
	Seconds int64
	Nanos   int
}

// NewDuration creates a [Duration].
func NewDuration(months, days, seconds int64, nanos int) Duration {
	return Duration{Months: months, Days: days, Seconds: seconds, Nanos: nanos}
}

// Kind implements [Value].
func (Duration) Kind() Kind { return KindDuration }

// Equal implements [Value].
func (d Duration) Equal(other Value) bool {
	o, ok := other.(Duration)

	return ok && d == o
}

// String renders the duration in ISO-8601 form, omitting zero components.
// The zero duration renders as PT0S; a uniformly negative duration takes
// a leading sign.
func (d Duration) String() string {
	sign := ""

	if d.Months <= 0 && d.Days <= 0 && d.Seconds <= 0 &&
		(d.Months < 0 || d.Days < 0 || d.Seconds < 0) {
		sign = "-"
		d.Months, d.Days, d.Seconds = -d.Months, -d.Days, -d.Seconds
	}

	var sb strings.Builder

	sb.WriteByte('P')

	years := d.Months / 12
	months := d.Months % 12

	if years != 0 {
		fmt.Fprintf(&sb, "%dY", years)
	}

	if months != 0 {
		fmt.Fprintf(&sb, "%dM", months)
	}

	if d.Days != 0 {
		fmt.Fprintf(&sb, "%dD", d.Days)
	}

	hours := d.Seconds / 3600
	minutes := (d.Seconds % 3600) / 60
	seconds := d.Seconds % 60

	if hours != 0 || minutes != 0 || seconds != 0 || d.Nanos != 0 {
		sb.WriteByte('T')

		if hours != 0 {
			fmt.Fprintf(&sb, "%dH", hours)
		}

		if minutes != 0 {
			fmt.Fprintf(&sb, "%dM", minutes)
		}

		if seconds != 0 || d.Nanos != 0 {
			if d.Nanos != 0 {
				frac := strings.TrimRight(fmt.Sprintf("%09d", d.Nanos), "0")
				fmt.Fprintf(&sb, "%d.%sS", seconds, frac)
			} else {
				fmt.Fprintf(&sb, "%dS", seconds)
			}
		}
	}

	if sb.Len() == 1 {
		return "PT0S"
	}

	return sign + sb.String()
}

// ParseTemporal parses an ISO-8601 string into one of the temporal kinds,
// trying the date, time, datetime, and duration forms in that order.
func ParseTemporal(s string) (Value, error) {
	if m := datePattern.FindStringSubmatch(s); m != nil {
		return parseDate(m)
	}

	if m := timePattern.FindStringSubmatch(s); m != nil {
		return parseTime(m)
	}

	if m := dateTimePattern.FindStringSubmatch(s); m != nil {
		date, err := parseDate(m)
		if err != nil {
			return nil, err
		}

		t, err := parseTime(m[3:])
		if err != nil {
			return nil, err
		}

		return DateTime{Date: date, Time: t}, nil
	}

	if m := durationPattern.FindStringSubmatch(s); m != nil {
		return parseDuration(m)
	}

	return nil, fmt.Errorf("unrecognized temporal format %q", s)
}

// parseDate builds a Date from three decimal submatches in m[1:4].
func parseDate(m []string) (Date, error) {
	d := Date{
		Year:  mustInt(m[1]),
		Month: mustInt(m[2]),
		Day:   mustInt(m[3]),
	}

	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return Date{}, fmt.Errorf("date %q out of range", m[0])
	}

	return d, nil
}

// parseTime builds a Time from submatches: hour, minute, optional second,
// optional fraction, optional offset, in m[1:6].
func parseTime(m []string) (Time, error) {
	t := Time{
		Hour:   mustInt(m[1]),
		Minute: mustInt(m[2]),
	}

	if m[3] != "" {
		t.Second = mustInt(m[3])
	}

	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return Time{}, fmt.Errorf("time %q out of range", m[0])
	}

	if m[4] != "" {
		t.Nanos = fracNanos(m[4])
	}

	if m[5] != "" {
		t = t.WithOffset(parseOffset(m[5]))
	}

	return t, nil
}

// parseDuration builds a Duration from the duration pattern submatches.
func parseDuration(m []string) (Duration, error) {
	present := false

	for _, g := range m[2:] {
		if g != "" {
			present = true

			break
		}
	}

	if !present {
		return Duration{}, fmt.Errorf("duration %q has no components", m[0])
	}

	sign := int64(1)
	if m[1] == "-" {
		sign = -1
	}

	var d Duration

	d.Months = sign * (12*mustInt64(m[2]) + mustInt64(m[3]))
	d.Days = sign * mustInt64(m[4])
	d.Seconds = sign * (3600*mustInt64(m[5]) + 60*mustInt64(m[6]) + mustInt64(m[7]))
	d.Nanos = fracNanos(m[8])

	return d, nil
}

// fracNanos converts a fractional-second submatch of up to nine digits
// into nanoseconds.
func fracNanos(frac string) int {
	if frac == "" {
		return 0
	}

	for len(frac) < 9 {
		frac += "0"
	}

	return mustInt(frac)
}

// parseOffset converts "Z" or "±HH:MM" into seconds east of UTC.
func parseOffset(s string) int {
	if s == "Z" {
		return 0
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}

	hours := mustInt(s[1:3])
	minutes := mustInt(s[4:6])

	return sign * (hours*3600 + minutes*60)
}

// formatOffset renders an offset in seconds as ±HH:MM.
func formatOffset(seconds int) string {
	sign := "+"

	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// mustInt converts a regex submatch known to be decimal digits. Empty
// submatches convert to zero.
func mustInt(s string) int {
	if s == "" {
		return 0
	}

	n, _ := strconv.Atoi(s)

	return n
}

func mustInt64(s string) int64 {
	if s == "" {
		return 0
	}

	n, _ := strconv.ParseInt(s, 10, 64)

	return n
}
