package render

import (
	"io"
	"strings"

	"github.com/goliatone/go-timepicker/pkg/flow"
	"github.com/goliatone/go-timepicker/pkg/render/template"
)

// Option customises a single render call.
type Option func(*options)

type options struct {
	renderer  template.TemplateRenderer
	template  string
	bootstrap *flow.Response
	writers   []io.Writer
}

func newOptions(opts ...Option) options {
	cfg := options{template: DefaultTemplate}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if strings.TrimSpace(cfg.template) == "" {
		cfg.template = DefaultTemplate
	}
	return cfg
}

// WithRenderer replaces the embedded template engine.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(o *options) {
		o.renderer = renderer
	}
}

// WithTemplate selects another template of the renderer.
func WithTemplate(name string) Option {
	return func(o *options) {
		o.template = strings.TrimSpace(name)
	}
}

// WithBootstrap embeds resp, usually the first flush of the UI the picker is
// attached to, as a JSON script next to the element.
func WithBootstrap(resp flow.Response) Option {
	return func(o *options) {
		o.bootstrap = &resp
	}
}

// WithWriter copies the rendered markup to w.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writers = append(o.writers, w)
		}
	}
}
