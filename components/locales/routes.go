package locales

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the route of the locale handler under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	return joinRoute(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes registers the locale handler under basePath on mux and
// returns the registered pattern.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers a handler built from opts.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("locales: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := joinRoute(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}

func joinRoute(basePath, routePath string) string {
	base := strings.Trim(strings.TrimSpace(basePath), "/")
	route := "/" + strings.TrimLeft(strings.TrimSpace(routePath), "/")
	if base == "" {
		return route
	}
	return "/" + base + route
}
