package flow

import (
	"encoding/json"
	"fmt"
	"io"
)

// Response is the batch of changes sent to the client after one cycle.
type Response struct {
	UIID        string       `json:"uiId"`
	SyncID      int          `json:"syncId"`
	Changes     []Change     `json:"changes,omitempty"`
	Invocations []Invocation `json:"invocations,omitempty"`
}

// Empty reports whether the response carries no changes or invocations.
func (r Response) Empty() bool {
	return len(r.Changes) == 0 && len(r.Invocations) == 0
}

// Change lists the state updates of one element. Tag is only set when the
// change is a full snapshot sent after an attach.
type Change struct {
	Node       int               `json:"node"`
	Tag        string            `json:"tag,omitempty"`
	Properties map[string]any    `json:"properties,omitempty"`
	Removed    []string          `json:"removed,omitempty"`
	Styles     map[string]string `json:"styles,omitempty"`
}

// Invocation is either a function call on an element (Node + Function) or a
// page level script (Expression). Script arguments are bound to $0, $1...
type Invocation struct {
	Node       int    `json:"node,omitempty"`
	Function   string `json:"function,omitempty"`
	Expression string `json:"expression,omitempty"`
	Args       []any  `json:"args,omitempty"`
}

// NodeRef is the wire form of an *Element argument.
type NodeRef struct {
	Node int `json:"@node"`
}

func encodeArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, len(args))
	for i, arg := range args {
		if el, ok := arg.(*Element); ok && el != nil {
			out[i] = NodeRef{Node: el.node}
			continue
		}
		out[i] = arg
	}
	return out
}

// ClientMessage carries the events a browser reports in one request.
type ClientMessage struct {
	UIID   string        `json:"uiId"`
	SyncID int           `json:"syncId"`
	Events []ClientEvent `json:"events"`
}

// ClientEvent is a DOM event on a node. Property and Value are set when the
// event carries a property update, e.g. value-changed.
type ClientEvent struct {
	Node     int    `json:"node"`
	Type     string `json:"type"`
	Property string `json:"property,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// DecodeClientMessage reads one JSON encoded ClientMessage.
func DecodeClientMessage(r io.Reader) (ClientMessage, error) {
	var msg ClientMessage
	if r == nil {
		return msg, fmt.Errorf("flow: missing reader")
	}
	if err := json.NewDecoder(r).Decode(&msg); err != nil {
		return ClientMessage{}, fmt.Errorf("flow: decode client message: %w", err)
	}
	return msg, nil
}
