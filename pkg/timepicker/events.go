package timepicker

import (
	"fmt"

	"github.com/goliatone/go-timepicker/pkg/flow"
	"github.com/goliatone/go-timepicker/pkg/timeofday"
)

// ValueChangeEvent reports a new selection.
type ValueChangeEvent struct {
	Source     *Picker
	OldValue   timeofday.Time
	Value      timeofday.Time
	FromClient bool
}

type ValueChangeListener func(ValueChangeEvent)

// InvalidChangeEvent reports a validity change made by the client.
type InvalidChangeEvent struct {
	Source  *Picker
	Invalid bool
}

type InvalidChangeListener func(InvalidChangeEvent)

// AddValueChangeListener registers fn. Listeners run synchronously in
// registration order, once per change from either side.
func (p *Picker) AddValueChangeListener(fn ValueChangeListener) flow.Registration {
	if fn == nil {
		return flow.RegistrationFunc(nil)
	}
	return p.valueListeners.Add(fn)
}

// AddInvalidChangeListener registers fn for invalid-changed events from the
// client.
func (p *Picker) AddInvalidChangeListener(fn InvalidChangeListener) flow.Registration {
	if fn == nil {
		return flow.RegistrationFunc(nil)
	}
	return p.invalidListeners.Add(fn)
}

func (p *Picker) fireValueChange(event ValueChangeEvent) {
	for _, fn := range p.valueListeners.Snapshot() {
		fn(event)
	}
}

func (p *Picker) onValueProperty(event flow.PropertyChangeEvent) error {
	if !event.FromClient {
		return nil
	}
	raw, ok := event.Value.(string)
	if !ok && event.Value != nil {
		return fmt.Errorf("timepicker: client value has type %T", event.Value)
	}
	parsed, err := timeofday.Parse(raw)
	if err != nil {
		return fmt.Errorf("timepicker: client value: %w", err)
	}
	old := p.value
	if old == parsed {
		return nil
	}
	p.value = parsed
	p.fireValueChange(ValueChangeEvent{Source: p, OldValue: old, Value: parsed, FromClient: true})
	return nil
}

func (p *Picker) onInvalidProperty(event flow.PropertyChangeEvent) error {
	if !event.FromClient {
		return nil
	}
	invalid, _ := event.Value.(bool)
	for _, fn := range p.invalidListeners.Snapshot() {
		fn(InvalidChangeEvent{Source: p, Invalid: invalid})
	}
	return nil
}
