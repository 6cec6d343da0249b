package locales

import (
	"net/http"

	"github.com/goliatone/go-timepicker/pkg/locale"
	"golang.org/x/text/language"
)

// EmptySearchMode controls what an empty query returns.
type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

const (
	DefaultRoutePath = "/api/locales"

	// DefaultLimit fills one dropdown page; the full x/text list is several
	// hundred tags once likely regions are added.
	DefaultLimit = 50

	// DefaultMaxLimit lets a single request page through every language
	// x/text can name, with its likely-region form.
	DefaultMaxLimit = 1000
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int

	// EmptySearchMode defaults to EmptySearchTop: a picker configuration
	// form shows locales before the user types.
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	// Provider supplies the candidate locales; nil means locale.System().
	Provider locale.Provider

	// LabelLanguage names locales when the request's Accept-Language
	// matches no known language. Und labels each locale in itself.
	LabelLanguage language.Tag
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       DefaultRoutePath,
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    DefaultLimit,
		MaxLimit:        DefaultMaxLimit,
		EmptySearchMode: EmptySearchTop,
		LabelLanguage:   language.Und,
	}
}

// NewOptions applies fns over DefaultOptions and restores any setting
// they cleared.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	opts.fillDefaults()
	return opts
}

func (o *Options) fillDefaults() {
	def := DefaultOptions()
	if o.RoutePath == "" {
		o.RoutePath = def.RoutePath
	}
	if o.SearchParam == "" {
		o.SearchParam = def.SearchParam
	}
	if o.LimitParam == "" {
		o.LimitParam = def.LimitParam
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = def.DefaultLimit
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = def.MaxLimit
	}
	if o.EmptySearchMode == "" {
		o.EmptySearchMode = def.EmptySearchMode
	}
}

func set(fn func(*Options)) OptionFn {
	return func(o *Options) {
		if o != nil {
			fn(o)
		}
	}
}

func WithRoutePath(path string) OptionFn {
	return set(func(o *Options) { o.RoutePath = path })
}

func WithSearchParam(name string) OptionFn {
	return set(func(o *Options) { o.SearchParam = name })
}

func WithLimitParam(name string) OptionFn {
	return set(func(o *Options) { o.LimitParam = name })
}

func WithDefaultLimit(limit int) OptionFn {
	return set(func(o *Options) { o.DefaultLimit = limit })
}

func WithMaxLimit(limit int) OptionFn {
	return set(func(o *Options) { o.MaxLimit = limit })
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return set(func(o *Options) { o.EmptySearchMode = mode })
}

func WithGuard(guard GuardFunc) OptionFn {
	return set(func(o *Options) { o.Guard = guard })
}

// WithProvider restricts the handler to the locales of provider.
func WithProvider(provider locale.Provider) OptionFn {
	return set(func(o *Options) { o.Provider = provider })
}

// WithLocales restricts the handler to a fixed list of locales.
func WithLocales(tags ...language.Tag) OptionFn {
	return WithProvider(locale.Static(tags...))
}

// WithLabelLanguage sets the fallback language for option labels.
func WithLabelLanguage(tag language.Tag) OptionFn {
	return set(func(o *Options) { o.LabelLanguage = tag })
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
