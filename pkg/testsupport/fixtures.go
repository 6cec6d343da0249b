package testsupport

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-timepicker/pkg/flow"
)

// Attach adds elements to a fresh UI and returns it together with the first
// flushed response.
func Attach(t *testing.T, elements []*flow.Element, opts ...flow.Option) (*flow.UI, flow.Response) {
	t.Helper()

	ui := flow.NewUI(opts...)
	ui.Add(elements...)
	return ui, ui.Flush()
}

// ClientMessage decodes a JSON client message literal, failing the test on
// malformed input.
func ClientMessage(t *testing.T, raw string) flow.ClientMessage {
	t.Helper()

	msg, err := flow.DecodeClientMessage(bytes.NewBufferString(raw))
	if err != nil {
		t.Fatalf("decode client message: %v", err)
	}
	return msg
}

// MustDecodeJSON unmarshals data into a generic value.
func MustDecodeJSON(t *testing.T, data []byte) any {
	t.Helper()

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode json: %v\n%s", err, data)
	}
	return out
}

// MustReadFile reads a fixture file.
func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
