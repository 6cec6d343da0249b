package timeofday

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrFormat is wrapped by every ParseError.
var ErrFormat = errors.New("timeofday: malformed time")

// ParseError describes text that is not an ISO local time.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return "timeofday: cannot parse " + strconv.Quote(e.Input)
	}
	return "timeofday: cannot parse " + strconv.Quote(e.Input) + ": " + e.Reason
}

func (e *ParseError) Unwrap() error { return ErrFormat }

// Precision is the finest clock field rendered by FormatPrecision.
type Precision int

const (
	PrecisionMinute Precision = iota
	PrecisionSecond
	PrecisionMillisecond
)

func (p Precision) unit() int64 {
	switch p {
	case PrecisionSecond:
		return nanosPerSecond
	case PrecisionMillisecond:
		return int64(time.Millisecond)
	default:
		return nanosPerMinute
	}
}

func (p Precision) String() string {
	switch p {
	case PrecisionSecond:
		return "second"
	case PrecisionMillisecond:
		return "millisecond"
	default:
		return "minute"
	}
}

// PrecisionForStep returns the display precision the web component selects
// for a step interval. Steps below one minute show seconds and steps below
// one second show milliseconds. A zero or negative step means the component
// default, which shows minutes.
func PrecisionForStep(step time.Duration) Precision {
	switch {
	case step <= 0:
		return PrecisionMinute
	case step < time.Second:
		return PrecisionMillisecond
	case step < time.Minute:
		return PrecisionSecond
	default:
		return PrecisionMinute
	}
}

// Format returns the shortest lossless ISO text for t, or "" for the
// absent value.
func Format(t Time) string {
	if !t.valid {
		return ""
	}
	var b strings.Builder
	b.Grow(18)
	writeHourMinute(&b, t)
	if t.second == 0 && t.nsec == 0 {
		return b.String()
	}
	writeSecond(&b, t)
	switch {
	case t.nsec == 0:
	case t.nsec%1_000_000 == 0:
		writeFraction(&b, int(t.nsec/1_000_000), 3)
	case t.nsec%1_000 == 0:
		writeFraction(&b, int(t.nsec/1_000), 6)
	default:
		writeFraction(&b, int(t.nsec), 9)
	}
	return b.String()
}

// FormatPrecision renders t truncated to p using a fixed layout:
// HH:MM, HH:MM:SS or HH:MM:SS.fff.
func FormatPrecision(t Time, p Precision) string {
	if !t.valid {
		return ""
	}
	var b strings.Builder
	b.Grow(12)
	writeHourMinute(&b, t)
	if p == PrecisionMinute {
		return b.String()
	}
	writeSecond(&b, t)
	if p == PrecisionMillisecond {
		writeFraction(&b, int(t.nsec/1_000_000), 3)
	}
	return b.String()
}

// Parse reads HH:MM, HH:MM:SS or HH:MM:SS.f with one to nine fraction
// digits. The empty string yields the absent value. Malformed input fails
// with a *ParseError.
func Parse(s string) (Time, error) {
	if s == "" {
		return Time{}, nil
	}
	fail := func(reason string) (Time, error) {
		return Time{}, &ParseError{Input: s, Reason: reason}
	}

	hour, rest, ok := twoDigits(s)
	if !ok {
		return fail("expected two digit hour")
	}
	if len(rest) == 0 || rest[0] != ':' {
		return fail("expected ':' after hour")
	}
	minute, rest, ok := twoDigits(rest[1:])
	if !ok {
		return fail("expected two digit minute")
	}

	second, nsec := 0, 0
	if len(rest) > 0 {
		if rest[0] != ':' {
			return fail("expected ':' after minute")
		}
		second, rest, ok = twoDigits(rest[1:])
		if !ok {
			return fail("expected two digit second")
		}
		if len(rest) > 0 {
			if rest[0] != '.' {
				return fail("unexpected trailing text")
			}
			digits := rest[1:]
			if len(digits) == 0 || len(digits) > 9 {
				return fail("fraction must have 1 to 9 digits")
			}
			for i := 0; i < len(digits); i++ {
				if digits[i] < '0' || digits[i] > '9' {
					return fail("fraction must be numeric")
				}
				nsec = nsec*10 + int(digits[i]-'0')
			}
			for i := len(digits); i < 9; i++ {
				nsec *= 10
			}
		}
	}

	t, err := Of(hour, minute, second, nsec)
	if err != nil {
		return fail(err.Error())
	}
	return t, nil
}

// MustParse mirrors Parse but panics on malformed input.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func twoDigits(s string) (int, string, bool) {
	if len(s) < 2 {
		return 0, s, false
	}
	hi, lo := s[0], s[1]
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, s, false
	}
	return int(hi-'0')*10 + int(lo-'0'), s[2:], true
}

func writeHourMinute(b *strings.Builder, t Time) {
	writePadded(b, int(t.hour), 2)
	b.WriteByte(':')
	writePadded(b, int(t.minute), 2)
}

func writeSecond(b *strings.Builder, t Time) {
	b.WriteByte(':')
	writePadded(b, int(t.second), 2)
}

func writeFraction(b *strings.Builder, v, width int) {
	b.WriteByte('.')
	writePadded(b, v, width)
}

func writePadded(b *strings.Builder, v, width int) {
	digits := strconv.Itoa(v)
	for i := len(digits); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(digits)
}
