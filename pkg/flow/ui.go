package flow

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownNode reports a client event for a node the UI does not hold.
	ErrUnknownNode = errors.New("flow: unknown node")
	// ErrUIMismatch reports a client message addressed to another UI.
	ErrUIMismatch = errors.New("flow: message for another ui")
	// ErrUnsupportedValue reports a client property value that is not a
	// string, bool, number or null.
	ErrUnsupportedValue = errors.New("flow: unsupported property value")
)

// Option configures a UI.
type Option func(*UI)

// WithID overrides the generated UI id.
func WithID(id string) Option {
	return func(u *UI) {
		if id = strings.TrimSpace(id); id != "" {
			u.id = id
		}
	}
}

// WithLocale sets the initial UI locale.
func WithLocale(tag language.Tag) Option {
	return func(u *UI) {
		u.locale = tag
	}
}

// WithLogger routes UI diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *UI) {
		if logger != nil {
			u.logger = logger
		}
	}
}

type task struct {
	owner   *Element
	fn      func(*UI)
	removed bool
}

// UI is one browser session: the element tree, its locale, the queue of
// before-response tasks and the pending client invocations.
type UI struct {
	mu sync.Mutex

	id     string
	locale language.Tag
	logger *slog.Logger

	nextNode int
	nodes    map[int]*Element
	assigned map[*Element]int
	order    []*Element

	tasks       []*task
	invocations []Invocation
	syncID      int

	page *Page
}

// NewUI creates a UI. The default locale is en-US and the default id is a
// random UUID.
func NewUI(opts ...Option) *UI {
	u := &UI{
		id:       uuid.NewString(),
		locale:   language.AmericanEnglish,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		nodes:    make(map[int]*Element),
		assigned: make(map[*Element]int),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(u)
	}
	u.page = &Page{ui: u}
	return u
}

func (u *UI) ID() string { return u.id }

func (u *UI) Locale() language.Tag { return u.locale }

func (u *UI) SetLocale(tag language.Tag) { u.locale = tag }

func (u *UI) Logger() *slog.Logger { return u.logger }

func (u *UI) Page() *Page { return u.page }

// SyncID returns the id of the last flushed response.
func (u *UI) SyncID() int { return u.syncID }

// Access runs fn holding the UI lock. Use it to mutate components from a
// goroutine other than the one handling the UI's requests.
func (u *UI) Access(fn func()) {
	if fn == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	fn()
}

// Add attaches elements to the UI. Attaching an element that is already
// part of this UI is a no-op; an element attached elsewhere is moved. An
// element keeps its node id when it is attached to the same UI again.
func (u *UI) Add(elements ...*Element) {
	for _, el := range elements {
		if el == nil || el.ui == u {
			continue
		}
		if el.ui != nil {
			el.ui.Remove(el)
		}
		node, ok := u.assigned[el]
		if !ok {
			u.nextNode++
			node = u.nextNode
			u.assigned[el] = node
		}
		u.nodes[node] = el
		u.order = append(u.order, el)
		el.attached(u, node)
	}
}

// Remove detaches elements. Their queued tasks stay pending until they are
// attached again.
func (u *UI) Remove(elements ...*Element) {
	for _, el := range elements {
		if el == nil || el.ui != u {
			continue
		}
		delete(u.nodes, el.node)
		u.order = slices.DeleteFunc(u.order, func(e *Element) bool { return e == el })
		el.detached(u)
	}
}

// Node returns the attached element with the given node id.
func (u *UI) Node(id int) (*Element, bool) {
	el, ok := u.nodes[id]
	return el, ok
}

// BeforeClientResponse queues fn to run during the next Flush, before the
// response is assembled, as long as owner is attached to this UI by then.
// Tasks queued by other tasks run in the same Flush.
func (u *UI) BeforeClientResponse(owner *Element, fn func(*UI)) Registration {
	if fn == nil {
		return RegistrationFunc(nil)
	}
	t := &task{owner: owner, fn: fn}
	u.tasks = append(u.tasks, t)
	return RegistrationFunc(func() { t.removed = true })
}

// Pending returns the number of queued before-response tasks.
func (u *UI) Pending() int {
	n := 0
	for _, t := range u.tasks {
		if !t.removed {
			n++
		}
	}
	return n
}

func (u *UI) enqueueInvocation(inv Invocation) {
	u.invocations = append(u.invocations, inv)
}

// Flush runs the queued tasks and drains every pending change into one
// Response.
func (u *UI) Flush() Response {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.runTasks()

	u.syncID++
	resp := Response{UIID: u.id, SyncID: u.syncID}
	for _, el := range u.order {
		if change, ok := el.collectChange(); ok {
			resp.Changes = append(resp.Changes, change)
		}
	}
	if len(u.invocations) > 0 {
		resp.Invocations = u.invocations
		u.invocations = nil
	}

	u.logger.Debug("flow: flushed response",
		"ui", u.id,
		"sync", resp.SyncID,
		"changes", len(resp.Changes),
		"invocations", len(resp.Invocations),
		"deferred", len(u.tasks),
	)
	return resp
}

func (u *UI) runTasks() {
	var deferred []*task
	for i := 0; i < len(u.tasks); i++ {
		t := u.tasks[i]
		if t.removed {
			continue
		}
		if t.owner != nil && t.owner.ui != u {
			deferred = append(deferred, t)
			continue
		}
		t.removed = true
		t.fn(u)
	}
	u.tasks = deferred
}

// HandleClient applies the events of a client message. Events for unknown
// nodes and errors returned by property listeners are joined into the
// returned error; the remaining events are still applied.
func (u *UI) HandleClient(msg ClientMessage) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if msg.UIID != "" && msg.UIID != u.id {
		return fmt.Errorf("%w: %s", ErrUIMismatch, msg.UIID)
	}
	if msg.SyncID != 0 && msg.SyncID < u.syncID {
		u.logger.Debug("flow: client message based on an older response",
			"ui", u.id, "client_sync", msg.SyncID, "sync", u.syncID)
	}

	var errs []error
	for _, event := range msg.Events {
		if err := u.handleEvent(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (u *UI) handleEvent(event ClientEvent) error {
	el, ok := u.nodes[event.Node]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, event.Node)
	}
	if !el.enabled {
		u.logger.Debug("flow: dropped event for disabled element",
			"node", event.Node, "type", event.Type)
		return nil
	}
	if event.Property == "" {
		return nil
	}
	if !el.isSynchronized(event.Property, event.Type) {
		u.logger.Debug("flow: dropped update of unsynchronized property",
			"node", event.Node, "property", event.Property, "type", event.Type)
		return nil
	}
	switch event.Value.(type) {
	case nil, string, bool, float64:
	default:
		return fmt.Errorf("%w: %s=%T", ErrUnsupportedValue, event.Property, event.Value)
	}
	if event.Value == nil {
		if !el.HasProperty(event.Property) {
			return nil
		}
		old := el.props[event.Property]
		delete(el.props, event.Property)
		err := el.firePropertyChange(PropertyChangeEvent{
			Element:    el,
			Name:       event.Property,
			OldValue:   old,
			FromClient: true,
		})
		if err != nil {
			el.restoreProperty(event.Property, old, true)
		}
		return err
	}
	return el.setProperty(event.Property, event.Value, true)
}

// Page executes scripts in the browser page of a UI.
type Page struct {
	ui *UI
}

// ExecuteJS queues a script for the next response. Arguments are available
// to the script as $0, $1 and so on; *Element arguments are sent as node
// references.
func (p *Page) ExecuteJS(expression string, args ...any) {
	if p == nil || p.ui == nil {
		return
	}
	p.ui.enqueueInvocation(Invocation{Expression: expression, Args: encodeArgs(args)})
}
