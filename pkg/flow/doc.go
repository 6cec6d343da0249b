// Package flow models the server side of a remote element protocol: a UI
// session owns a tree of elements, each with a key/value property store
// mirrored to the browser.
//
// Components never talk to the browser directly. They mutate element
// properties, call client functions by name, or execute page scripts, and
// every such change is buffered until UI.Flush builds the next Response.
// Work that must happen "right before the response is sent" is queued with
// UI.BeforeClientResponse and runs inside Flush, so a response cycle emits
// at most one batch per element.
//
// Client updates arrive as a ClientMessage through UI.HandleClient. Only
// properties registered with Element.SynchronizeProperty are accepted from
// the client, and disabled elements ignore client events.
//
// A UI is single writer. HandleClient, Flush and Access serialise on the UI
// lock; everything else assumes the caller already holds it, either because
// it runs inside one of those calls or because the UI is not shared between
// goroutines.
package flow
