// Package timepicker provides the server side counterpart of the
// vaadin-time-picker web component.
//
// A Picker owns a flow.Element and mirrors its state through typed
// accessors: the selected time (timeofday.Time), label, placeholder,
// required and invalid flags, error message, step interval and min/max
// bounds. Values cross the wire as ISO local time text; the step interval
// decides whether that text carries seconds or milliseconds.
//
// The browser formats times with the picker locale. Only the language and
// region subtags are sent, and when no locale is set explicitly the picker
// adopts the UI locale the first time it is attached.
//
// Properties that the client does not synchronise back (placeholder,
// required, step, min, max) report the last value set on the server.
package timepicker
