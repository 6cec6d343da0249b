package timeofday

import (
	"errors"
	"fmt"
	"time"
)

// ErrRange reports a clock field outside its valid range.
var ErrRange = errors.New("timeofday: field out of range")

const (
	nanosPerSecond = int64(time.Second)
	nanosPerMinute = int64(time.Minute)
	nanosPerHour   = int64(time.Hour)
)

// Time is an immutable wall-clock time. The zero value means "no time".
type Time struct {
	hour   uint8
	minute uint8
	second uint8
	nsec   uint32
	valid  bool
}

// Of builds a Time from its fields. It fails with ErrRange when a field is
// outside hour 0-23, minute 0-59, second 0-59 or nsec 0-999999999.
func Of(hour, minute, second, nsec int) (Time, error) {
	switch {
	case hour < 0 || hour > 23:
		return Time{}, fmt.Errorf("%w: hour %d", ErrRange, hour)
	case minute < 0 || minute > 59:
		return Time{}, fmt.Errorf("%w: minute %d", ErrRange, minute)
	case second < 0 || second > 59:
		return Time{}, fmt.Errorf("%w: second %d", ErrRange, second)
	case nsec < 0 || nsec >= int(nanosPerSecond):
		return Time{}, fmt.Errorf("%w: nanosecond %d", ErrRange, nsec)
	}
	return Time{
		hour:   uint8(hour),
		minute: uint8(minute),
		second: uint8(second),
		nsec:   uint32(nsec),
		valid:  true,
	}, nil
}

// MustOf mirrors Of but panics on invalid input. Intended for literals.
func MustOf(hour, minute, second, nsec int) Time {
	t, err := Of(hour, minute, second, nsec)
	if err != nil {
		panic(err)
	}
	return t
}

// FromTime returns the clock part of ts in its own location.
func FromTime(ts time.Time) Time {
	return Time{
		hour:   uint8(ts.Hour()),
		minute: uint8(ts.Minute()),
		second: uint8(ts.Second()),
		nsec:   uint32(ts.Nanosecond()),
		valid:  true,
	}
}

func fromNanoOfDay(n int64) Time {
	return Time{
		hour:   uint8(n / nanosPerHour),
		minute: uint8(n % nanosPerHour / nanosPerMinute),
		second: uint8(n % nanosPerMinute / nanosPerSecond),
		nsec:   uint32(n % nanosPerSecond),
		valid:  true,
	}
}

// IsZero reports whether t is the absent value.
func (t Time) IsZero() bool { return !t.valid }

func (t Time) Hour() int       { return int(t.hour) }
func (t Time) Minute() int     { return int(t.minute) }
func (t Time) Second() int     { return int(t.second) }
func (t Time) Nanosecond() int { return int(t.nsec) }

func (t Time) nanoOfDay() int64 {
	return int64(t.hour)*nanosPerHour +
		int64(t.minute)*nanosPerMinute +
		int64(t.second)*nanosPerSecond +
		int64(t.nsec)
}

// Compare returns -1, 0 or +1. The absent value sorts before every time.
func (t Time) Compare(u Time) int {
	switch {
	case t.valid != u.valid:
		if !t.valid {
			return -1
		}
		return 1
	case !t.valid:
		return 0
	}
	a, b := t.nanoOfDay(), u.nanoOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (t Time) Before(u Time) bool { return t.Compare(u) < 0 }
func (t Time) After(u Time) bool  { return t.Compare(u) > 0 }
func (t Time) Equal(u Time) bool  { return t == u }

// Truncate drops the fields finer than p.
func (t Time) Truncate(p Precision) Time {
	if !t.valid {
		return t
	}
	n := t.nanoOfDay()
	return fromNanoOfDay(n - n%p.unit())
}

// On returns the instant of t on the date of day, in day's location.
func (t Time) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, int(t.hour), int(t.minute), int(t.second), int(t.nsec), day.Location())
}

func (t Time) String() string { return Format(t) }

// MarshalText implements encoding.TextMarshaler using Format.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(Format(t)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (t *Time) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
