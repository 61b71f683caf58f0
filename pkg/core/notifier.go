package core

// Disposable is implemented by resources that need explicit cleanup.
type Disposable interface {
	Dispose()
}

// Listenable is implemented by anything listeners can subscribe to.
type Listenable interface {
	AddListener(fn func()) func()
}

// Notifier is a minimal Listenable. The zero value is ready to use.
//
// Notifier is NOT thread-safe. It must only be used from the UI loop.
type Notifier struct {
	listeners map[int]func()
	order     []int
	next      int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers fn and returns a function that removes it.
func (n *Notifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	n.next++
	id := n.next
	n.listeners[id] = fn
	n.order = append(n.order, id)
	return func() {
		delete(n.listeners, id)
	}
}

// Notify calls every listener in registration order.
func (n *Notifier) Notify() {
	ids := append([]int(nil), n.order...)
	n.order = n.order[:0]
	for _, id := range ids {
		if _, ok := n.listeners[id]; ok {
			n.order = append(n.order, id)
		}
	}
	for _, id := range ids {
		if fn, ok := n.listeners[id]; ok {
			fn()
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	return len(n.listeners)
}

// Clear removes every listener.
func (n *Notifier) Clear() {
	n.listeners = nil
	n.order = nil
}
