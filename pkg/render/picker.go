package render

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-timepicker/pkg/render/template"
	"github.com/goliatone/go-timepicker/pkg/timepicker"
)

//go:embed templates/*.tpl
var templateFiles embed.FS

// DefaultTemplate names the embedded picker template.
const DefaultTemplate = "picker"

// ErrNilPicker is returned when rendering without a picker.
var ErrNilPicker = errors.New("render: picker is nil")

var defaultEngine = sync.OnceValues(func() (*template.Engine, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, err
	}
	return template.New(template.WithFS(sub))
})

// Attribute is one attribute of the rendered element. Boolean attributes are
// rendered by name only.
type Attribute struct {
	Name    string `json:"name"`
	Value   string `json:"value,omitempty"`
	Boolean bool   `json:"boolean,omitempty"`
}

// Picker renders the initial markup of p: a vaadin-time-picker element
// carrying the current property values and, with WithBootstrap, the first
// response for the client connector.
func Picker(p *timepicker.Picker, opts ...Option) (string, error) {
	if p == nil {
		return "", ErrNilPicker
	}
	cfg := newOptions(opts...)

	renderer := cfg.renderer
	if renderer == nil {
		engine, err := defaultEngine()
		if err != nil {
			return "", fmt.Errorf("render: load templates: %w", err)
		}
		renderer = engine
	}

	attrs := Attributes(p)
	items := make([]map[string]any, 0, len(attrs))
	for _, attr := range attrs {
		items = append(items, map[string]any{
			"name":    attr.Name,
			"value":   attr.Value,
			"boolean": attr.Boolean,
		})
	}
	data := map[string]any{
		"tag":        timepicker.TagName,
		"attributes": items,
		"node":       p.Element().Node(),
	}

	if cfg.bootstrap != nil {
		payload, err := json.Marshal(cfg.bootstrap)
		if err != nil {
			return "", fmt.Errorf("render: encode bootstrap: %w", err)
		}
		data["bootstrap"] = string(payload)
		data["ui_id"] = cfg.bootstrap.UIID
	}

	out, err := renderer.RenderTemplate(cfg.template, data, cfg.writers...)
	if err != nil {
		return "", fmt.Errorf("render: picker: %w", err)
	}
	return out, nil
}

// Attributes lists the element attributes for the current picker state in
// a stable order.
func Attributes(p *timepicker.Picker) []Attribute {
	if p == nil {
		return nil
	}
	el := p.Element()
	var attrs []Attribute
	text := func(name, value string) {
		if value = sanitizeText(value); value != "" {
			attrs = append(attrs, Attribute{Name: name, Value: value})
		}
	}
	flag := func(name string, on bool) {
		if on {
			attrs = append(attrs, Attribute{Name: name, Boolean: true})
		}
	}

	text("id", p.ID())
	text("label", p.Label())
	text("placeholder", p.Placeholder())
	if value := el.PropertyString(timepicker.PropertyValue, ""); value != "" {
		attrs = append(attrs, Attribute{Name: "value", Value: value})
	}
	if el.HasProperty(timepicker.PropertyStep) {
		seconds := el.PropertyFloat(timepicker.PropertyStep, 0)
		attrs = append(attrs, Attribute{Name: "step", Value: strconv.FormatFloat(seconds, 'f', -1, 64)})
	}
	for _, name := range []string{timepicker.PropertyMin, timepicker.PropertyMax} {
		if bound := el.PropertyString(name, ""); bound != "" {
			attrs = append(attrs, Attribute{Name: name, Value: bound})
		}
	}
	text("error-message", p.ErrorMessage())
	flag("required", p.IsRequired())
	flag("disabled", !p.IsEnabled())
	flag("invalid", p.IsInvalid())

	var style []string
	if w := strings.TrimSpace(p.Width()); w != "" {
		style = append(style, "width: "+w)
	}
	if h := strings.TrimSpace(p.Height()); h != "" {
		style = append(style, "height: "+h)
	}
	if len(style) > 0 {
		attrs = append(attrs, Attribute{Name: "style", Value: strings.Join(style, "; ")})
	}
	return attrs
}

// Write renders p into w.
func Write(w io.Writer, p *timepicker.Picker, opts ...Option) error {
	if w == nil {
		return errors.New("render: writer is nil")
	}
	_, err := Picker(p, append(opts, WithWriter(w))...)
	return err
}
