package timepicker

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-timepicker/pkg/flow"
	"github.com/goliatone/go-timepicker/pkg/locale"
	"github.com/goliatone/go-timepicker/pkg/timeofday"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func attach(t *testing.T, p *Picker, opts ...flow.Option) (*flow.UI, flow.Response) {
	t.Helper()
	ui := flow.NewUI(append([]flow.Option{flow.WithID("ui-test")}, opts...)...)
	ui.Add(p.Element())
	return ui, ui.Flush()
}

func clientValue(node int, value any) flow.ClientMessage {
	return flow.ClientMessage{Events: []flow.ClientEvent{{
		Node:     node,
		Type:     "value-changed",
		Property: PropertyValue,
		Value:    value,
	}}}
}

func wireValue(p *Picker) string {
	return p.Element().PropertyString(PropertyValue, "")
}

func TestSetLocale_SendsLanguageAndRegion(t *testing.T) {
	cases := map[string]string{
		"fi-FI":      "fi-FI",
		"en":         "en",
		"sr-Latn-RS": "sr-RS",
		"de-DE-1996": "de-DE",
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			p := MustNew(WithLocale(language.MustParse(input)))
			_, resp := attach(t, p)

			wantInvocations := []flow.Invocation{
				{Expression: connectorInitLazy, Args: []any{flow.NodeRef{Node: 1}}},
				{Node: 1, Function: connectorSetLocale, Args: []any{want}},
			}
			if diff := cmp.Diff(wantInvocations, resp.Invocations); diff != "" {
				t.Fatalf("invocation mismatch (-want +got):\n%s", diff)
			}
			if got := p.Locale().String(); got != language.MustParse(input).String() {
				t.Fatalf("expected stored locale %s, got %s", input, got)
			}
		})
	}
}

func TestSetLocale_RejectsTagsWithoutLanguage(t *testing.T) {
	p := MustNew(WithLocale(language.MustParse("fi-FI")))
	ui, _ := attach(t, p)

	for _, tag := range []language.Tag{language.Und, language.MustParse("und-FI")} {
		err := p.SetLocale(tag)
		if !errors.Is(err, ErrInvalidLocale) {
			t.Fatalf("expected ErrInvalidLocale for %s, got %v", tag, err)
		}
		if !errors.Is(err, locale.ErrMissingLanguage) {
			t.Fatalf("expected ErrMissingLanguage for %s, got %v", tag, err)
		}
	}

	if got := p.Locale().String(); got != "fi-FI" {
		t.Fatalf("locale changed to %s", got)
	}
	if n := ui.Pending(); n != 0 {
		t.Fatalf("rejected locales should not schedule work, %d tasks pending", n)
	}
	if resp := ui.Flush(); len(resp.Invocations) != 0 {
		t.Fatalf("expected no invocations, got %#v", resp.Invocations)
	}
}

func TestNew_FailingOptionAbortsConstruction(t *testing.T) {
	p, err := New(WithLabel("Start"), WithLocale(language.Und))
	if p != nil {
		t.Fatalf("expected nil picker on error")
	}
	if !errors.Is(err, ErrInvalidLocale) {
		t.Fatalf("expected ErrInvalidLocale, got %v", err)
	}
}

func TestAttach_AdoptsUILocale(t *testing.T) {
	p := MustNew()
	if got := p.Locale(); got.String() != "und" {
		t.Fatalf("expected undetermined locale before attach, got %s", got)
	}

	_, resp := attach(t, p, flow.WithLocale(language.MustParse("de-DE")))

	want := []flow.Invocation{
		{Expression: connectorInitLazy, Args: []any{flow.NodeRef{Node: 1}}},
		{Node: 1, Function: connectorSetLocale, Args: []any{"de-DE"}},
	}
	if diff := cmp.Diff(want, resp.Invocations); diff != "" {
		t.Fatalf("invocation mismatch (-want +got):\n%s", diff)
	}
	if got := p.Locale().String(); got != "de-DE" {
		t.Fatalf("expected adopted locale de-DE, got %s", got)
	}
}

func TestAttach_InitialisesConnectorOnEveryAttach(t *testing.T) {
	p := MustNew(WithLocale(language.Finnish))
	first, _ := attach(t, p)

	second := flow.NewUI(flow.WithLocale(language.German))
	second.Add(p.Element())
	resp := second.Flush()

	want := []flow.Invocation{
		{Expression: connectorInitLazy, Args: []any{flow.NodeRef{Node: 1}}},
	}
	if diff := cmp.Diff(want, resp.Invocations); diff != "" {
		t.Fatalf("invocation mismatch (-want +got):\n%s", diff)
	}
	if got := p.Locale().String(); got != "fi" {
		t.Fatalf("explicit locale should survive a move, got %s", got)
	}
	if resp := first.Flush(); len(resp.Invocations) != 0 {
		t.Fatalf("old UI should not receive invocations: %#v", resp.Invocations)
	}
}

func TestAttach_SkipsUILocaleWithoutLanguage(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	p := MustNew()
	_, resp := attach(t, p, flow.WithLocale(language.Und), flow.WithLogger(logger))

	if got := p.Locale(); got.String() != "und" {
		t.Fatalf("expected locale to stay unset, got %s", got)
	}
	want := []flow.Invocation{
		{Expression: connectorInitLazy, Args: []any{flow.NodeRef{Node: 1}}},
	}
	if diff := cmp.Diff(want, resp.Invocations); diff != "" {
		t.Fatalf("invocation mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "ui locale not applied") {
		t.Fatalf("expected a warning, got %q", logs.String())
	}
}

func TestAttach_AdoptsLocaleOnFirstAttachOnly(t *testing.T) {
	p := MustNew()
	attach(t, p, flow.WithLocale(language.Und))

	attach(t, p, flow.WithLocale(language.German))
	if got := p.Locale(); got.String() != "und" {
		t.Fatalf("expected no defaulting on a later attach, got %s", got)
	}
}

func TestSetStep_SelectsWirePrecision(t *testing.T) {
	cases := []struct {
		name  string
		value string
		step  time.Duration
		want  string
	}{
		{name: "half second", value: "12:31", step: 500 * time.Millisecond, want: "12:31:00.000"},
		{name: "ten seconds", value: "12:31", step: 10 * time.Second, want: "12:31:00"},
		{name: "half hour", value: "12:30", step: 30 * time.Minute, want: "12:30"},
		{name: "drops seconds", value: "12:30:45", step: time.Hour, want: "12:30"},
		{name: "zero step", value: "12:31:15", step: 0, want: "12:31:15"},
		{name: "negative step", value: "12:31:15.250", step: -time.Second, want: "12:31:15.250"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := MustNew(WithValue(timeofday.MustParse(tc.value)))
			p.SetStep(tc.step)
			if got := wireValue(p); got != tc.want {
				t.Fatalf("expected wire value %q, got %q", tc.want, got)
			}
			if got := p.Step(); got != tc.step {
				t.Fatalf("expected step %s, got %s", tc.step, got)
			}

			// values set after the step use the same precision
			p.Clear()
			p.SetValue(timeofday.MustParse(tc.value))
			if got := wireValue(p); got != tc.want {
				t.Fatalf("expected wire value %q after reset, got %q", tc.want, got)
			}
		})
	}
}

func TestSetStep_SendsSeconds(t *testing.T) {
	p := MustNew(WithStep(90 * time.Second))
	if got := p.Element().PropertyFloat(PropertyStep, 0); got != 90 {
		t.Fatalf("expected 90 seconds, got %v", got)
	}

	p = MustNew()
	if got := p.Step(); got != 0 {
		t.Fatalf("expected zero step, got %s", got)
	}
	p.SetValue(timeofday.MustOf(8, 5, 7, 123_000_000))
	if got := wireValue(p); got != "08:05:07.123" {
		t.Fatalf("expected lossless value without a step, got %q", got)
	}
}

func TestValueChange_ClientNotifiesOnce(t *testing.T) {
	p := MustNew()
	ui, _ := attach(t, p)

	var events []ValueChangeEvent
	p.AddValueChangeListener(func(event ValueChangeEvent) {
		events = append(events, event)
	})

	if err := ui.HandleClient(clientValue(p.Element().Node(), "15:45")); err != nil {
		t.Fatalf("handle client: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one notification, got %d", len(events))
	}
	got := events[0]
	if got.Source != p || !got.FromClient {
		t.Fatalf("unexpected event source %#v", got)
	}
	if !got.OldValue.IsZero() || got.Value != timeofday.MustParse("15:45") {
		t.Fatalf("unexpected values old=%s new=%s", got.OldValue, got.Value)
	}
	if p.Value() != timeofday.MustParse("15:45") {
		t.Fatalf("picker value not updated: %s", p.Value())
	}

	// repeating the same value is not a change
	if err := ui.HandleClient(clientValue(p.Element().Node(), "15:45")); err != nil {
		t.Fatalf("handle client: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected no extra notification, got %d", len(events))
	}

	if err := ui.HandleClient(clientValue(p.Element().Node(), "")); err != nil {
		t.Fatalf("handle client: %v", err)
	}
	if len(events) != 2 || !p.IsEmpty() {
		t.Fatalf("expected clearing notification, events=%d empty=%v", len(events), p.IsEmpty())
	}
}

func TestValueChange_ListenersRunInOrder(t *testing.T) {
	p := MustNew()
	ui, _ := attach(t, p)

	var calls []string
	p.AddValueChangeListener(func(ValueChangeEvent) { calls = append(calls, "first") })
	removed := p.AddValueChangeListener(func(ValueChangeEvent) { calls = append(calls, "removed") })
	p.AddValueChangeListener(func(ValueChangeEvent) { calls = append(calls, "last") })
	removed.Remove()
	removed.Remove()

	if err := ui.HandleClient(clientValue(p.Element().Node(), "09:00")); err != nil {
		t.Fatalf("handle client: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "last"}, calls); diff != "" {
		t.Fatalf("listener order mismatch (-want +got):\n%s", diff)
	}
}

func TestValueChange_MalformedClientValue(t *testing.T) {
	p := MustNew(WithValue(timeofday.MustParse("10:00")))
	ui, _ := attach(t, p)

	notified := false
	p.AddValueChangeListener(func(ValueChangeEvent) { notified = true })

	err := ui.HandleClient(clientValue(p.Element().Node(), "10:6x"))
	if !errors.Is(err, timeofday.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	var parseErr *timeofday.ParseError
	if !errors.As(err, &parseErr) || parseErr.Input != "10:6x" {
		t.Fatalf("expected ParseError for the client input, got %v", err)
	}
	if notified {
		t.Fatalf("malformed values must not notify listeners")
	}
	if p.Value() != timeofday.MustParse("10:00") {
		t.Fatalf("value changed to %s", p.Value())
	}
	if got := wireValue(p); got != "10:00" {
		t.Fatalf("rejected client value kept on the element: %q", got)
	}

	err = ui.HandleClient(clientValue(p.Element().Node(), true))
	if err == nil {
		t.Fatalf("expected error for a non string value")
	}
	if raw, _ := p.Element().Property(PropertyValue); raw != "10:00" {
		t.Fatalf("rejected client value kept on the element: %#v", raw)
	}

	p.SetValue(timeofday.MustParse("11:45"))
	resp := ui.Flush()
	if len(resp.Changes) != 1 || resp.Changes[0].Properties[PropertyValue] != "11:45" {
		t.Fatalf("expected the server value to be sent, got %#v", resp.Changes)
	}
}

func TestSetValue_NotifiesServerChanges(t *testing.T) {
	var events []ValueChangeEvent
	p := MustNew(WithValueChangeListener(func(event ValueChangeEvent) {
		events = append(events, event)
	}), WithValue(timeofday.MustParse("07:30")))

	p.SetValue(timeofday.MustParse("07:30"))
	if len(events) != 1 {
		t.Fatalf("expected one notification, got %d", len(events))
	}
	if events[0].FromClient {
		t.Fatalf("server changes must not be flagged as client changes")
	}
	if got := wireValue(p); got != "07:30" {
		t.Fatalf("expected wire value 07:30, got %q", got)
	}

	p.Clear()
	if len(events) != 2 || !events[1].Value.IsZero() || wireValue(p) != "" {
		t.Fatalf("clear should notify and send an empty value, events=%d wire=%q", len(events), wireValue(p))
	}
	if p.EmptyValue() != p.Value() {
		t.Fatalf("cleared picker should hold the empty value")
	}
}

func TestUnsynchronisedPropertiesIgnoreClient(t *testing.T) {
	p := MustNew(WithPlaceholder("hh:mm"), WithRequired(true), WithStep(time.Minute))
	ui, _ := attach(t, p)
	node := p.Element().Node()

	msg := flow.ClientMessage{Events: []flow.ClientEvent{
		{Node: node, Type: "placeholder-changed", Property: PropertyPlaceholder, Value: "client"},
		{Node: node, Type: "required-changed", Property: PropertyRequired, Value: false},
		{Node: node, Type: "step-changed", Property: PropertyStep, Value: 1.0},
	}}
	if err := ui.HandleClient(msg); err != nil {
		t.Fatalf("handle client: %v", err)
	}

	if got := p.Placeholder(); got != "hh:mm" {
		t.Fatalf("placeholder changed to %q", got)
	}
	if !p.IsRequired() {
		t.Fatalf("required changed by client")
	}
	if got := p.Step(); got != time.Minute {
		t.Fatalf("step changed to %s", got)
	}
}

func TestInvalidChange_FromClient(t *testing.T) {
	p := MustNew()
	ui, _ := attach(t, p)

	var got []bool
	p.AddInvalidChangeListener(func(event InvalidChangeEvent) { got = append(got, event.Invalid) })
	p.SetInvalid(false)

	msg := flow.ClientMessage{Events: []flow.ClientEvent{{
		Node: p.Element().Node(), Type: "invalid-changed", Property: PropertyInvalid, Value: true,
	}}}
	if err := ui.HandleClient(msg); err != nil {
		t.Fatalf("handle client: %v", err)
	}
	if diff := cmp.Diff([]bool{true}, got); diff != "" {
		t.Fatalf("invalid events mismatch (-want +got):\n%s", diff)
	}
	if !p.IsInvalid() {
		t.Fatalf("expected picker to be invalid")
	}
}

func TestDisabledPickerIgnoresClient(t *testing.T) {
	p := MustNew(WithEnabled(false))
	ui, resp := attach(t, p)

	if got := resp.Changes[0].Properties["disabled"]; got != true {
		t.Fatalf("expected disabled property, got %v", got)
	}

	notified := false
	p.AddValueChangeListener(func(ValueChangeEvent) { notified = true })
	if err := ui.HandleClient(clientValue(p.Element().Node(), "11:00")); err != nil {
		t.Fatalf("handle client: %v", err)
	}
	if notified || !p.IsEmpty() {
		t.Fatalf("disabled picker accepted a client value")
	}

	p.SetEnabled(true)
	if !p.IsEnabled() {
		t.Fatalf("expected picker to be enabled")
	}
}

func TestMinMaxBounds(t *testing.T) {
	p := MustNew(WithMin(timeofday.MustParse("05:00")), WithMax(timeofday.MustParse("18:00")))

	if got := p.Element().PropertyString(PropertyMin, ""); got != "05:00" {
		t.Fatalf("expected min 05:00, got %q", got)
	}
	if got := p.Element().PropertyString(PropertyMax, ""); got != "18:00" {
		t.Fatalf("expected max 18:00, got %q", got)
	}
	if p.Min() != timeofday.MustParse("05:00") || p.Max() != timeofday.MustParse("18:00") {
		t.Fatalf("unexpected bounds %s-%s", p.Min(), p.Max())
	}

	p.SetMin(timeofday.Time{})
	if p.Element().HasProperty(PropertyMin) || !p.Min().IsZero() {
		t.Fatalf("expected min to be removed")
	}
}

func TestTextProperties(t *testing.T) {
	p := MustNew(
		WithID("start-time"),
		WithLabel("Start"),
		WithErrorMessage("Pick a time"),
		WithSize("10em", ""),
	)

	got := map[string]string{
		"id":     p.ID(),
		"label":  p.Label(),
		"error":  p.ErrorMessage(),
		"width":  p.Width(),
		"height": p.Height(),
	}
	want := map[string]string{
		"id":     "start-time",
		"label":  "Start",
		"error":  "Pick a time",
		"width":  "10em",
		"height": "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("property mismatch (-want +got):\n%s", diff)
	}

	p.SetID("")
	if p.Element().HasProperty(PropertyID) {
		t.Fatalf("empty id should remove the property")
	}
}

func TestSupportedAvailableLocales(t *testing.T) {
	provider := locale.Static(
		language.MustParse("fi-FI"),
		language.Und,
		language.MustParse("und-SE"),
		language.English,
	)

	var got []string
	for _, tag := range SupportedAvailableLocales(provider) {
		got = append(got, tag.String())
	}
	if diff := cmp.Diff([]string{"fi-FI", "en"}, got); diff != "" {
		t.Fatalf("supported locales mismatch (-want +got):\n%s", diff)
	}

	for _, tag := range SupportedAvailableLocales(nil) {
		if !locale.HasLanguage(tag) {
			t.Fatalf("system locales include %s", tag)
		}
	}
}
