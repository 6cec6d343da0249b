package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-timepicker/components/locales"
	"github.com/goliatone/go-timepicker/internal/prompt"
	"github.com/goliatone/go-timepicker/pkg/flow"
	"github.com/goliatone/go-timepicker/pkg/render"
	"github.com/goliatone/go-timepicker/pkg/timepicker"
	"golang.org/x/text/language"
)

type options struct {
	config      string
	locale      string
	uiLocale    string
	interactive bool
	verbose     bool
	driver      prompt.Driver
}

func main() {
	opts := options{driver: prompt.Survey()}
	flag.StringVar(&opts.config, "config", "", "picker config file (YAML or JSON)")
	flag.StringVar(&opts.locale, "locale", "", "picker locale, overrides the config")
	flag.StringVar(&opts.uiLocale, "ui-locale", "en-US", "UI locale adopted when the picker has none")
	flag.BoolVar(&opts.interactive, "interactive", false, "ask for missing settings")
	flag.BoolVar(&opts.verbose, "v", false, "log flow diagnostics to stderr")
	output := flag.String("output", "", "output file (stdout if empty)")
	listLocales := flag.Bool("locales", false, "list supported locales and exit")
	serve := flag.String("serve", "", "serve the picker page and the locale API on this address")
	flag.Parse()

	ctx := context.Background()

	if *listLocales {
		if err := writeLocales(os.Stdout); err != nil {
			log.Fatalf("Failed to list locales: %v", err)
		}
		return
	}

	if *serve != "" {
		mux, err := newMux(ctx, opts)
		if err != nil {
			log.Fatalf("Failed to build server: %v", err)
		}
		log.Printf("Serving on %s", *serve)
		log.Fatal(http.ListenAndServe(*serve, mux))
	}

	html, err := build(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to render picker: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Picker written to %s\n", *output)
	} else {
		fmt.Println(html)
	}
}

// build loads the config, attaches a picker to a fresh UI and renders it
// with the first response as bootstrap.
func build(ctx context.Context, opts options) (string, error) {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return "", err
	}
	if tag := strings.TrimSpace(opts.locale); tag != "" {
		cfg.Locale = tag
	}
	if opts.interactive {
		if err := prompt.Complete(ctx, opts.driver, &cfg, localeValues()); err != nil {
			return "", err
		}
	}

	uiTag, err := language.Parse(strings.TrimSpace(opts.uiLocale))
	if err != nil {
		return "", fmt.Errorf("ui locale %q: %w", opts.uiLocale, err)
	}

	picker, err := timepicker.NewFromConfig(cfg)
	if err != nil {
		return "", err
	}
	ui := flow.NewUI(flow.WithLocale(uiTag), flow.WithLogger(newLogger(opts.verbose)))
	ui.Add(picker.Element())

	return render.Picker(picker, render.WithBootstrap(ui.Flush()))
}

func loadConfig(path string) (timepicker.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return timepicker.Config{}, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return timepicker.Config{}, err
	}
	return timepicker.LoadConfigFile(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newMux(ctx context.Context, opts options) (*http.ServeMux, error) {
	if opts.interactive {
		return nil, errors.New("-interactive cannot be combined with -serve")
	}
	labels, err := language.Parse(opts.uiLocale)
	if err != nil {
		labels = language.Und
	}
	mux := http.NewServeMux()
	catalog := locales.New(locales.WithLabelLanguage(labels))
	if _, err := catalog.RegisterRoutes(mux, "/"); err != nil {
		return nil, err
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		request := opts
		if tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil && len(tags) > 0 {
			request.uiLocale = tags[0].String()
		}
		html, err := build(ctx, request)
		if err != nil {
			log.Printf("render picker: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, html)
	})
	return mux, nil
}

func localeValues() []string {
	entries := locales.New().Entries()
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Value)
	}
	return out
}

func writeLocales(w io.Writer) error {
	for _, entry := range locales.Entries(nil) {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Value, entry.Name, entry.English); err != nil {
			return err
		}
	}
	return nil
}
