// Package timeofday implements the wall-clock value exchanged with the
// vaadin-time-picker web component. A Time has hour, minute, second and
// nanosecond fields and no date or zone. The zero Time is the absent value
// ("no selection"); every other Time is a valid clock time.
//
// The wire form is ISO-8601 local time text: HH:MM, HH:MM:SS or
// HH:MM:SS.fff. Format always produces the shortest lossless text so that
// Parse(Format(t)) == t, while FormatPrecision produces the text the web
// component displays for a given step interval.
package timeofday
