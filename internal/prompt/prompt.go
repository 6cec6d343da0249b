package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-timepicker/pkg/timeofday"
	"github.com/goliatone/go-timepicker/pkg/timepicker"
)

// UILocaleChoice is the first locale choice; it leaves the picker to adopt
// the UI locale on attach.
const UILocaleChoice = "(UI locale)"

// Complete asks for the fields of cfg that are still unset: label, value,
// step, locale and the required flag. locales are the choices offered for
// the locale question, which is skipped when there are none.
func Complete(ctx context.Context, d Driver, cfg *timepicker.Config, locales []string) error {
	if d == nil {
		return errors.New("prompt: missing driver")
	}
	if cfg == nil {
		return errors.New("prompt: missing config")
	}

	if strings.TrimSpace(cfg.Label) == "" {
		label, err := d.Input(ctx, InputConfig{Message: "Label"})
		if err != nil {
			return fmt.Errorf("prompt: label: %w", err)
		}
		cfg.Label = strings.TrimSpace(label)
	}

	if cfg.Value.IsZero() {
		raw, err := d.Input(ctx, InputConfig{
			Message:   "Initial time",
			Help:      "HH:MM, HH:MM:SS or HH:MM:SS.fff; empty for no value",
			Validator: validateTime,
		})
		if err != nil {
			return fmt.Errorf("prompt: value: %w", err)
		}
		value, err := timeofday.Parse(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("prompt: value: %w", err)
		}
		cfg.Value = value
	}

	if strings.TrimSpace(cfg.Step) == "" {
		raw, err := d.Input(ctx, InputConfig{
			Message:   "Step",
			Help:      "Go duration such as 30m or 500ms; empty for the client default",
			Validator: validateStep,
		})
		if err != nil {
			return fmt.Errorf("prompt: step: %w", err)
		}
		if err := validateStep(raw); err != nil {
			return fmt.Errorf("prompt: step: %w", err)
		}
		cfg.Step = strings.TrimSpace(raw)
	}

	if strings.TrimSpace(cfg.Locale) == "" && len(locales) > 0 {
		options := append([]string{UILocaleChoice}, locales...)
		idx, err := d.Select(ctx, SelectConfig{
			Message:  "Locale",
			Options:  options,
			PageSize: 15,
		})
		if err != nil {
			return fmt.Errorf("prompt: locale: %w", err)
		}
		if idx > 0 && idx < len(options) {
			cfg.Locale = options[idx]
		}
	}

	if !cfg.Required {
		required, err := d.Confirm(ctx, ConfirmConfig{Message: "Required?"})
		if err != nil {
			return fmt.Errorf("prompt: required: %w", err)
		}
		cfg.Required = required
	}
	return nil
}

func validateTime(raw string) error {
	_, err := timeofday.Parse(strings.TrimSpace(raw))
	return err
}

func validateStep(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	step, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %s", step)
	}
	return nil
}
