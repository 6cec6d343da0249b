package timepicker

import (
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-timepicker/pkg/flow"
	"github.com/goliatone/go-timepicker/pkg/locale"
	"github.com/goliatone/go-timepicker/pkg/timeofday"
	"golang.org/x/text/language"
)

// TagName is the web component backing a Picker.
const TagName = "vaadin-time-picker"

const (
	connectorInitLazy  = "window.Vaadin.Flow.timepickerConnector.initLazy($0)"
	connectorSetLocale = "$connector.setLocale"
)

// Element property names.
const (
	PropertyValue        = "value"
	PropertyLabel        = "label"
	PropertyPlaceholder  = "placeholder"
	PropertyRequired     = "required"
	PropertyInvalid      = "invalid"
	PropertyErrorMessage = "errorMessage"
	PropertyStep         = "step"
	PropertyMin          = "min"
	PropertyMax          = "max"
	PropertyID           = "id"
)

// ErrInvalidLocale is returned by SetLocale for tags the browser cannot
// localize.
var ErrInvalidLocale = errors.New("timepicker: invalid locale")

// Option configures a Picker during New.
type Option func(*Picker) error

// Picker is a time of day input bound to one remote element.
type Picker struct {
	element *flow.Element

	value     timeofday.Time
	locale    language.Tag
	localeSet bool

	valueListeners   flow.Listeners[ValueChangeListener]
	invalidListeners flow.Listeners[InvalidChangeListener]
}

// New builds a detached picker. Options run in order and the first failing
// option aborts construction.
func New(opts ...Option) (*Picker, error) {
	p := &Picker{
		element: flow.NewElement(TagName),
		locale:  language.Und,
	}
	p.element.SynchronizeProperty(PropertyValue, "value-changed")
	p.element.SynchronizeProperty(PropertyInvalid, "invalid-changed")
	p.element.SetPropertyString(PropertyValue, "")
	p.element.AddPropertyChangeListener(PropertyValue, p.onValueProperty)
	p.element.AddPropertyChangeListener(PropertyInvalid, p.onInvalidProperty)
	p.element.AddAttachListener(p.onAttach)

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNew mirrors New but panics on error.
func MustNew(opts ...Option) *Picker {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Element exposes the remote element, e.g. to attach it to a UI.
func (p *Picker) Element() *flow.Element { return p.element }

// IsAttached reports whether the picker element is part of a UI.
func (p *Picker) IsAttached() bool { return p.element.IsAttached() }

// onAttach adopts the UI locale on the first attach when none was set, and
// initializes the client connector on every attach.
func (p *Picker) onAttach(event flow.AttachEvent) {
	if event.Initial && !p.localeSet {
		if err := p.SetLocale(event.UI.Locale()); err != nil {
			event.UI.Logger().Warn("timepicker: ui locale not applied",
				"node", p.element.Node(),
				"locale", event.UI.Locale().String(),
				"error", err,
			)
		}
	}
	p.initConnector()
}

func (p *Picker) initConnector() {
	p.runBeforeClientResponse(func(ui *flow.UI) {
		ui.Page().ExecuteJS(connectorInitLazy, p.element)
	})
}

func (p *Picker) runBeforeClientResponse(cmd func(*flow.UI)) {
	p.element.RunWhenAttached(func(ui *flow.UI) {
		ui.BeforeClientResponse(p.element, cmd)
	})
}

// SupportedAvailableLocales lists the locales of provider that a picker can
// use, dropping tags without a language subtag. A nil provider uses
// locale.System().
func SupportedAvailableLocales(provider locale.Provider) []language.Tag {
	return locale.Supported(provider)
}

// SetLocale sets the locale the browser formats times with. The tag must
// carry a language; only language and region are sent to the client. The
// update is sent before the next client response.
func (p *Picker) SetLocale(tag language.Tag) error {
	wire, err := locale.WireTag(tag)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLocale, err)
	}
	p.locale = tag
	p.localeSet = true
	p.runBeforeClientResponse(func(*flow.UI) {
		p.element.CallFunction(connectorSetLocale, wire)
	})
	return nil
}

// Locale returns the picker locale, or language.Und until one is set
// explicitly or adopted from the UI on attach.
func (p *Picker) Locale() language.Tag { return p.locale }

// WithValue preselects a time.
func WithValue(t timeofday.Time) Option {
	return func(p *Picker) error {
		p.SetValue(t)
		return nil
	}
}

func WithLabel(label string) Option {
	return func(p *Picker) error {
		p.SetLabel(label)
		return nil
	}
}

func WithPlaceholder(placeholder string) Option {
	return func(p *Picker) error {
		p.SetPlaceholder(placeholder)
		return nil
	}
}

func WithErrorMessage(message string) Option {
	return func(p *Picker) error {
		p.SetErrorMessage(message)
		return nil
	}
}

func WithRequired(required bool) Option {
	return func(p *Picker) error {
		p.SetRequired(required)
		return nil
	}
}

func WithID(id string) Option {
	return func(p *Picker) error {
		p.SetID(id)
		return nil
	}
}

// WithLocale fails construction when the tag has no language.
func WithLocale(tag language.Tag) Option {
	return func(p *Picker) error {
		return p.SetLocale(tag)
	}
}

// WithStep sets the dropdown interval; see SetStep.
func WithStep(step time.Duration) Option {
	return func(p *Picker) error {
		p.SetStep(step)
		return nil
	}
}

func WithMin(t timeofday.Time) Option {
	return func(p *Picker) error {
		p.SetMin(t)
		return nil
	}
}

func WithMax(t timeofday.Time) Option {
	return func(p *Picker) error {
		p.SetMax(t)
		return nil
	}
}

func WithEnabled(enabled bool) Option {
	return func(p *Picker) error {
		p.SetEnabled(enabled)
		return nil
	}
}

func WithSize(width, height string) Option {
	return func(p *Picker) error {
		p.SetWidth(width)
		p.SetHeight(height)
		return nil
	}
}

// WithValueChangeListener registers fn. It observes changes made by the
// options that follow it.
func WithValueChangeListener(fn ValueChangeListener) Option {
	return func(p *Picker) error {
		p.AddValueChangeListener(fn)
		return nil
	}
}
