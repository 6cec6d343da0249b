package timepicker

import (
	"math"
	"time"

	"github.com/goliatone/go-timepicker/pkg/timeofday"
)

// Value returns the selected time, or the zero Time when nothing is selected.
func (p *Picker) Value() timeofday.Time { return p.value }

// IsEmpty reports whether no time is selected.
func (p *Picker) IsEmpty() bool { return p.value.IsZero() }

// EmptyValue is the value of a picker without a selection.
func (p *Picker) EmptyValue() timeofday.Time { return timeofday.Time{} }

// Clear removes the selection.
func (p *Picker) Clear() { p.SetValue(timeofday.Time{}) }

// SetValue selects t and notifies value change listeners when it differs
// from the current value. The zero Time clears the selection.
func (p *Picker) SetValue(t timeofday.Time) {
	old := p.value
	if old == t {
		return
	}
	p.value = t
	p.element.SetPropertyString(PropertyValue, p.wireValue(t))
	p.fireValueChange(ValueChangeEvent{Source: p, OldValue: old, Value: t})
}

// wireValue renders t the way the client displays it for the current step.
// Without a positive step the lossless ISO form is used.
func (p *Picker) wireValue(t timeofday.Time) string {
	step := p.Step()
	if step <= 0 {
		return timeofday.Format(t)
	}
	return timeofday.FormatPrecision(t, timeofday.PrecisionForStep(step))
}

// Label returns the label property.
func (p *Picker) Label() string { return p.element.PropertyString(PropertyLabel, "") }

func (p *Picker) SetLabel(label string) { p.element.SetPropertyString(PropertyLabel, label) }

// Placeholder returns the last placeholder set on the server; the property
// is not synchronised from the client.
func (p *Picker) Placeholder() string {
	return p.element.PropertyString(PropertyPlaceholder, "")
}

func (p *Picker) SetPlaceholder(placeholder string) {
	p.element.SetPropertyString(PropertyPlaceholder, placeholder)
}

// IsRequired returns the last required flag set on the server; the property
// is not synchronised from the client.
func (p *Picker) IsRequired() bool { return p.element.PropertyBool(PropertyRequired, false) }

func (p *Picker) SetRequired(required bool) {
	p.element.SetPropertyBool(PropertyRequired, required)
}

// IsInvalid returns the invalid flag, including updates from the client.
func (p *Picker) IsInvalid() bool { return p.element.PropertyBool(PropertyInvalid, false) }

func (p *Picker) SetInvalid(invalid bool) {
	p.element.SetPropertyBool(PropertyInvalid, invalid)
}

func (p *Picker) ErrorMessage() string {
	return p.element.PropertyString(PropertyErrorMessage, "")
}

func (p *Picker) SetErrorMessage(message string) {
	p.element.SetPropertyString(PropertyErrorMessage, message)
}

// SetStep sets the interval between the items of the dropdown. It is sent
// in seconds. Steps below 15 minutes hide the dropdown, steps below a
// minute make the field show seconds and steps below a second show
// milliseconds. For a well formed dropdown the step should evenly divide a
// day or an hour; that is not checked here.
//
// The current value is sent again in the precision the new step selects. A
// step of zero or less leaves the value in its lossless form.
func (p *Picker) SetStep(step time.Duration) {
	p.element.SetPropertyFloat(PropertyStep, step.Seconds())
	if !p.value.IsZero() {
		p.element.SetPropertyString(PropertyValue, p.wireValue(p.value))
	}
}

// Step returns the last step set on the server, or 0 when none was set.
func (p *Picker) Step() time.Duration {
	seconds := p.element.PropertyFloat(PropertyStep, 0)
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// SetMin sets the earliest selectable time. The zero Time removes the bound.
func (p *Picker) SetMin(t timeofday.Time) { p.setBound(PropertyMin, t) }

// SetMax sets the latest selectable time. The zero Time removes the bound.
func (p *Picker) SetMax(t timeofday.Time) { p.setBound(PropertyMax, t) }

func (p *Picker) Min() timeofday.Time { return p.bound(PropertyMin) }
func (p *Picker) Max() timeofday.Time { return p.bound(PropertyMax) }

func (p *Picker) setBound(name string, t timeofday.Time) {
	if t.IsZero() {
		p.element.RemoveProperty(name)
		return
	}
	p.element.SetPropertyString(name, timeofday.Format(t))
}

func (p *Picker) bound(name string) timeofday.Time {
	t, err := timeofday.Parse(p.element.PropertyString(name, ""))
	if err != nil {
		return timeofday.Time{}
	}
	return t
}

func (p *Picker) IsEnabled() bool { return p.element.IsEnabled() }

// SetEnabled toggles user interaction. Client events of a disabled picker
// are ignored.
func (p *Picker) SetEnabled(enabled bool) { p.element.SetEnabled(enabled) }

func (p *Picker) ID() string { return p.element.PropertyString(PropertyID, "") }

func (p *Picker) SetID(id string) {
	if id == "" {
		p.element.RemoveProperty(PropertyID)
		return
	}
	p.element.SetPropertyString(PropertyID, id)
}

func (p *Picker) Width() string  { return p.element.Style("width") }
func (p *Picker) Height() string { return p.element.Style("height") }

// SetWidth sets a CSS width such as "10em". An empty value removes it.
func (p *Picker) SetWidth(width string) { p.element.SetStyle("width", width) }

// SetHeight sets a CSS height. An empty value removes it.
func (p *Picker) SetHeight(height string) { p.element.SetStyle("height", height) }
