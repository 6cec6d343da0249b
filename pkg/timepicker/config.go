package timepicker

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/goliatone/go-timepicker/pkg/timeofday"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config is the file form of a picker. Times use the ISO wire text, Step is
// a Go duration ("30m", "500ms") and Locale a BCP 47 tag.
type Config struct {
	ID           string         `json:"id" yaml:"id"`
	Label        string         `json:"label" yaml:"label"`
	Placeholder  string         `json:"placeholder" yaml:"placeholder"`
	ErrorMessage string         `json:"errorMessage" yaml:"errorMessage"`
	Value        timeofday.Time `json:"value" yaml:"value"`
	Min          timeofday.Time `json:"min" yaml:"min"`
	Max          timeofday.Time `json:"max" yaml:"max"`
	Step         string         `json:"step" yaml:"step"`
	Required     bool           `json:"required" yaml:"required"`
	Disabled     bool           `json:"disabled" yaml:"disabled"`
	Locale       string         `json:"locale" yaml:"locale"`
	Width        string         `json:"width" yaml:"width"`
	Height       string         `json:"height" yaml:"height"`
}

// LoadConfig parses a JSON or YAML picker config.
func LoadConfig(r io.Reader) (Config, error) {
	if r == nil {
		return Config{}, fmt.Errorf("timepicker: missing reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("timepicker: read config: %w", err)
	}
	return parseConfig(data, "config")
}

// LoadConfigFile reads and parses path from fsys.
func LoadConfigFile(fsys fs.FS, path string) (Config, error) {
	if fsys == nil {
		return Config{}, fmt.Errorf("timepicker: missing filesystem")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("timepicker: read %s: %w", path, err)
	}
	return parseConfig(data, path)
}

func parseConfig(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("timepicker: %s is empty", source)
	}

	var cfg Config
	jsonErr := json.Unmarshal(data, &cfg)
	if jsonErr == nil {
		return cfg, nil
	}

	cfg = Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("timepicker: parse %s: %w", source, err)
	}
	return cfg, nil
}

// Options converts the config into picker options. Fields left at their
// zero value produce no option.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	if id := strings.TrimSpace(c.ID); id != "" {
		opts = append(opts, WithID(id))
	}
	if c.Label != "" {
		opts = append(opts, WithLabel(c.Label))
	}
	if c.Placeholder != "" {
		opts = append(opts, WithPlaceholder(c.Placeholder))
	}
	if c.ErrorMessage != "" {
		opts = append(opts, WithErrorMessage(c.ErrorMessage))
	}
	if c.Required {
		opts = append(opts, WithRequired(true))
	}
	if !c.Min.IsZero() {
		opts = append(opts, WithMin(c.Min))
	}
	if !c.Max.IsZero() {
		opts = append(opts, WithMax(c.Max))
	}
	width, height := strings.TrimSpace(c.Width), strings.TrimSpace(c.Height)
	if width != "" || height != "" {
		opts = append(opts, WithSize(width, height))
	}

	if raw := strings.TrimSpace(c.Step); raw != "" {
		step, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("timepicker: step %q: %w", raw, err)
		}
		opts = append(opts, WithStep(step))
	}

	if raw := strings.TrimSpace(c.Locale); raw != "" {
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("timepicker: locale %q: %w", raw, err)
		}
		opts = append(opts, WithLocale(tag))
	}

	if c.Disabled {
		opts = append(opts, WithEnabled(false))
	}
	if !c.Value.IsZero() {
		opts = append(opts, WithValue(c.Value))
	}
	return opts, nil
}

// NewFromConfig builds a picker from c followed by extra options.
func NewFromConfig(c Config, extra ...Option) (*Picker, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return New(append(opts, extra...)...)
}
