package flow

// Registration undoes a listener or task registration. Remove is idempotent.
type Registration interface {
	Remove()
}

// RegistrationFunc adapts a function to Registration.
type RegistrationFunc func()

func (fn RegistrationFunc) Remove() {
	if fn != nil {
		fn()
	}
}

type listenerEntry[T any] struct {
	fn      T
	removed bool
}

// Listeners is an ordered listener list whose entries can be removed while
// the list is being iterated. The zero value is ready to use.
type Listeners[T any] struct {
	entries []*listenerEntry[T]
}

// Add appends fn and returns its deregistration handle.
func (l *Listeners[T]) Add(fn T) Registration {
	entry := &listenerEntry[T]{fn: fn}
	l.entries = append(l.entries, entry)
	return RegistrationFunc(func() {
		if entry.removed {
			return
		}
		entry.removed = true
		l.compact()
	})
}

// Len returns the number of registered listeners.
func (l *Listeners[T]) Len() int {
	n := 0
	for _, entry := range l.entries {
		if !entry.removed {
			n++
		}
	}
	return n
}

// Snapshot returns the listeners in registration order.
func (l *Listeners[T]) Snapshot() []T {
	out := make([]T, 0, len(l.entries))
	for _, entry := range l.entries {
		if entry.removed {
			continue
		}
		out = append(out, entry.fn)
	}
	return out
}

func (l *Listeners[T]) compact() {
	kept := l.entries[:0:0]
	for _, entry := range l.entries {
		if !entry.removed {
			kept = append(kept, entry)
		}
	}
	l.entries = kept
}
