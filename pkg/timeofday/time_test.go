package timeofday

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestOf_RejectsOutOfRangeFields(t *testing.T) {
	bad := [][4]int{
		{-1, 0, 0, 0},
		{24, 0, 0, 0},
		{0, 60, 0, 0},
		{0, 0, 60, 0},
		{0, 0, 0, -1},
		{0, 0, 0, 1_000_000_000},
	}
	for _, fields := range bad {
		got, err := Of(fields[0], fields[1], fields[2], fields[3])
		if !errors.Is(err, ErrRange) {
			t.Fatalf("Of(%v) expected ErrRange, got %v", fields, err)
		}
		if !got.IsZero() {
			t.Fatalf("Of(%v) returned a partially built value %#v", fields, got)
		}
	}
}

func TestCompare_OrdersAbsentFirst(t *testing.T) {
	five := MustOf(5, 0, 0, 0)
	six := MustOf(18, 0, 0, 0)

	if !five.Before(six) || !six.After(five) {
		t.Fatalf("expected 05:00 before 18:00")
	}
	if (Time{}).Compare(five) != -1 || five.Compare(Time{}) != 1 {
		t.Fatalf("expected absent value to sort first")
	}
	if (Time{}).Compare(Time{}) != 0 {
		t.Fatalf("expected absent values to compare equal")
	}
	if !five.Equal(MustOf(5, 0, 0, 0)) {
		t.Fatalf("expected equal times")
	}
}

func TestTruncate(t *testing.T) {
	v := MustOf(12, 31, 45, 678_900_000)
	if got := v.Truncate(PrecisionSecond); got != MustOf(12, 31, 45, 0) {
		t.Fatalf("second truncation: %v", got)
	}
	if got := v.Truncate(PrecisionMillisecond); got != MustOf(12, 31, 45, 678_000_000) {
		t.Fatalf("millisecond truncation: %v", got)
	}
	if got := v.Truncate(PrecisionMinute); got != MustOf(12, 31, 0, 0) {
		t.Fatalf("minute truncation: %v", got)
	}
	if got := (Time{}).Truncate(PrecisionMinute); !got.IsZero() {
		t.Fatalf("absent value should stay absent")
	}
}

func TestFromTimeAndOn(t *testing.T) {
	loc := time.FixedZone("test", 3*3600)
	ts := time.Date(2024, time.March, 1, 15, 4, 5, 6, loc)

	v := FromTime(ts)
	if v != MustOf(15, 4, 5, 6) {
		t.Fatalf("FromTime = %v", v)
	}

	day := time.Date(2030, time.January, 2, 0, 0, 0, 0, time.UTC)
	if got := v.On(day); !got.Equal(time.Date(2030, time.January, 2, 15, 4, 5, 6, time.UTC)) {
		t.Fatalf("On = %v", got)
	}
}

func TestTextMarshalling(t *testing.T) {
	type payload struct {
		Min Time `json:"min"`
		Max Time `json:"max"`
	}

	raw, err := json.Marshal(payload{Min: MustOf(5, 0, 0, 0)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"min":"05:00","max":""}` {
		t.Fatalf("unexpected json %s", raw)
	}

	var decoded payload
	if err := json.Unmarshal([]byte(`{"min":"13:00:00","max":""}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Min != MustOf(13, 0, 0, 0) || !decoded.Max.IsZero() {
		t.Fatalf("unexpected decoded payload %#v", decoded)
	}

	if err := json.Unmarshal([]byte(`{"min":"25:00"}`), &decoded); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}
