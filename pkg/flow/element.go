package flow

import (
	"errors"
	"maps"
	"slices"
)

// PropertyChangeEvent describes a property update on an element.
type PropertyChangeEvent struct {
	Element    *Element
	Name       string
	OldValue   any
	Value      any
	FromClient bool
}

// PropertyChangeListener reacts to property updates. Errors returned for
// client originated updates are reported by UI.HandleClient.
type PropertyChangeListener func(PropertyChangeEvent) error

// AttachEvent is delivered when an element joins a UI.
type AttachEvent struct {
	UI      *UI
	Element *Element
	// Initial is true the first time the element is attached to any UI.
	Initial bool
}

// DetachEvent is delivered when an element leaves a UI.
type DetachEvent struct {
	UI      *UI
	Element *Element
}

// Element is a server side handle for one client element.
type Element struct {
	tag  string
	node int
	ui   *UI

	props   map[string]any
	styles  map[string]string
	enabled bool

	// pending changes since the last flush
	snapshot     bool
	dirtyProps   []string
	removedProps []string
	dirtyStyles  []string

	// property name -> DOM event carrying it
	synced map[string]string

	propertyListeners map[string]*Listeners[PropertyChangeListener]
	attachListeners   Listeners[func(AttachEvent)]
	detachListeners   Listeners[func(DetachEvent)]
	whenAttached      []func(*UI)
	everAttached      bool
}

// NewElement returns a detached element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{
		tag:               tag,
		props:             make(map[string]any),
		styles:            make(map[string]string),
		enabled:           true,
		synced:            make(map[string]string),
		propertyListeners: make(map[string]*Listeners[PropertyChangeListener]),
	}
}

func (e *Element) Tag() string { return e.tag }

// Node returns the node id assigned by the UI, or 0 before the first attach.
func (e *Element) Node() int { return e.node }

// UI returns the UI the element is attached to, or nil.
func (e *Element) UI() *UI { return e.ui }

func (e *Element) IsAttached() bool { return e.ui != nil }

// Property returns the raw value of a property.
func (e *Element) Property(name string) (any, bool) {
	value, ok := e.props[name]
	return value, ok
}

func (e *Element) HasProperty(name string) bool {
	_, ok := e.props[name]
	return ok
}

// PropertyString returns the property as a string, or def when it is unset
// or has another type.
func (e *Element) PropertyString(name, def string) string {
	if value, ok := e.props[name].(string); ok {
		return value
	}
	return def
}

// PropertyBool returns the property as a bool, or def when it is unset or
// has another type.
func (e *Element) PropertyBool(name string, def bool) bool {
	if value, ok := e.props[name].(bool); ok {
		return value
	}
	return def
}

// PropertyFloat returns the property as a float64, or def when it is unset
// or has another type.
func (e *Element) PropertyFloat(name string, def float64) float64 {
	if value, ok := e.props[name].(float64); ok {
		return value
	}
	return def
}

func (e *Element) SetPropertyString(name, value string) { e.setProperty(name, value, false) }
func (e *Element) SetPropertyBool(name string, value bool) { e.setProperty(name, value, false) }
func (e *Element) SetPropertyFloat(name string, value float64) {
	e.setProperty(name, value, false)
}

// RemoveProperty deletes a property on both sides.
func (e *Element) RemoveProperty(name string) {
	old, ok := e.props[name]
	if !ok {
		return
	}
	delete(e.props, name)
	e.dirtyProps = slices.DeleteFunc(e.dirtyProps, func(n string) bool { return n == name })
	if !slices.Contains(e.removedProps, name) {
		e.removedProps = append(e.removedProps, name)
	}
	_ = e.firePropertyChange(PropertyChangeEvent{Element: e, Name: name, OldValue: old})
}

func (e *Element) setProperty(name string, value any, fromClient bool) error {
	old, existed := e.props[name]
	if existed && old == value {
		return nil
	}
	e.props[name] = value
	if !fromClient {
		e.removedProps = slices.DeleteFunc(e.removedProps, func(n string) bool { return n == name })
		if !slices.Contains(e.dirtyProps, name) {
			e.dirtyProps = append(e.dirtyProps, name)
		}
	}
	err := e.firePropertyChange(PropertyChangeEvent{
		Element:    e,
		Name:       name,
		OldValue:   old,
		Value:      value,
		FromClient: fromClient,
	})
	if err != nil && fromClient {
		e.restoreProperty(name, old, existed)
	}
	return err
}

// restoreProperty puts back a property value that a listener rejected.
func (e *Element) restoreProperty(name string, old any, existed bool) {
	if existed {
		e.props[name] = old
		return
	}
	delete(e.props, name)
}

func (e *Element) firePropertyChange(event PropertyChangeEvent) error {
	list := e.propertyListeners[event.Name]
	if list == nil {
		return nil
	}
	var errs []error
	for _, fn := range list.Snapshot() {
		if err := fn(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddPropertyChangeListener registers fn for updates of the named property,
// from either side.
func (e *Element) AddPropertyChangeListener(name string, fn PropertyChangeListener) Registration {
	if fn == nil {
		return RegistrationFunc(nil)
	}
	list := e.propertyListeners[name]
	if list == nil {
		list = &Listeners[PropertyChangeListener]{}
		e.propertyListeners[name] = list
	}
	return list.Add(fn)
}

// SynchronizeProperty accepts client updates of property when they arrive
// with the given DOM event. Other properties are server owned and client
// writes to them are dropped.
func (e *Element) SynchronizeProperty(property, event string) {
	e.synced[property] = event
}

func (e *Element) isSynchronized(property, event string) bool {
	want, ok := e.synced[property]
	return ok && want == event
}

// Style returns an inline style value, or "".
func (e *Element) Style(name string) string { return e.styles[name] }

// SetStyle sets an inline style. An empty value removes it.
func (e *Element) SetStyle(name, value string) {
	if e.styles[name] == value {
		return
	}
	if value == "" {
		delete(e.styles, name)
	} else {
		e.styles[name] = value
	}
	if !slices.Contains(e.dirtyStyles, name) {
		e.dirtyStyles = append(e.dirtyStyles, name)
	}
}

func (e *Element) IsEnabled() bool { return e.enabled }

// SetEnabled toggles the disabled property. Disabled elements drop client
// events.
func (e *Element) SetEnabled(enabled bool) {
	e.enabled = enabled
	if enabled {
		e.RemoveProperty("disabled")
		return
	}
	e.SetPropertyBool("disabled", true)
}

// AddAttachListener registers fn for every attach of the element.
func (e *Element) AddAttachListener(fn func(AttachEvent)) Registration {
	if fn == nil {
		return RegistrationFunc(nil)
	}
	return e.attachListeners.Add(fn)
}

// AddDetachListener registers fn for every detach of the element.
func (e *Element) AddDetachListener(fn func(DetachEvent)) Registration {
	if fn == nil {
		return RegistrationFunc(nil)
	}
	return e.detachListeners.Add(fn)
}

// RunWhenAttached runs fn now when the element is attached, otherwise right
// after its next attach.
func (e *Element) RunWhenAttached(fn func(*UI)) {
	if fn == nil {
		return
	}
	if e.ui != nil {
		fn(e.ui)
		return
	}
	e.whenAttached = append(e.whenAttached, fn)
}

// CallFunction invokes a function on the client element. The call is queued
// as a before-response task once the element is attached, so it follows any
// script already queued in the same cycle. Element arguments are sent as
// node references.
func (e *Element) CallFunction(name string, args ...any) {
	args = slices.Clone(args)
	e.RunWhenAttached(func(ui *UI) {
		ui.BeforeClientResponse(e, func(ui *UI) {
			ui.enqueueInvocation(Invocation{Node: e.node, Function: name, Args: encodeArgs(args)})
		})
	})
}

func (e *Element) attached(ui *UI, node int) {
	initial := !e.everAttached
	e.ui = ui
	e.node = node
	e.everAttached = true
	e.snapshot = true

	event := AttachEvent{UI: ui, Element: e, Initial: initial}
	for _, fn := range e.attachListeners.Snapshot() {
		fn(event)
	}

	pending := e.whenAttached
	e.whenAttached = nil
	for _, fn := range pending {
		if e.ui != ui {
			// detached by a listener; keep the rest for the next attach
			e.whenAttached = append(e.whenAttached, fn)
			continue
		}
		fn(ui)
	}
}

func (e *Element) detached(ui *UI) {
	e.ui = nil
	event := DetachEvent{UI: ui, Element: e}
	for _, fn := range e.detachListeners.Snapshot() {
		fn(event)
	}
}

// collectChange drains the pending change set.
func (e *Element) collectChange() (Change, bool) {
	change := Change{Node: e.node}
	if e.snapshot {
		change.Tag = e.tag
		if len(e.props) > 0 {
			change.Properties = maps.Clone(e.props)
		}
		if len(e.styles) > 0 {
			change.Styles = maps.Clone(e.styles)
		}
	} else {
		if len(e.dirtyProps) > 0 {
			change.Properties = make(map[string]any, len(e.dirtyProps))
			for _, name := range e.dirtyProps {
				change.Properties[name] = e.props[name]
			}
		}
		if len(e.removedProps) > 0 {
			change.Removed = slices.Clone(e.removedProps)
		}
		if len(e.dirtyStyles) > 0 {
			change.Styles = make(map[string]string, len(e.dirtyStyles))
			for _, name := range e.dirtyStyles {
				change.Styles[name] = e.styles[name]
			}
		}
	}

	hasChange := e.snapshot || change.Properties != nil || change.Removed != nil || change.Styles != nil
	e.snapshot = false
	e.dirtyProps = nil
	e.removedProps = nil
	e.dirtyStyles = nil
	return change, hasChange
}
