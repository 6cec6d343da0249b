// Package render produces the server side markup of a time picker: the
// custom element with its current attributes and an optional JSON bootstrap
// holding the first flow response. Text attributes are stripped of markup
// before the template escapes them.
package render
