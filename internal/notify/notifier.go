// Package notify provides a typed change-notification register so callers can
// react to study-data mutations without polling the stores.
package notify

import "sync"

// Kind identifies which store a change event originates from.
type Kind string

const (
	StudyListChanged    Kind = "studyList"
	VisitedChanged      Kind = "visited"
	StudyResultsChanged Kind = "studyResults"
)

// Event carries the store snapshot that triggered the notification.
// Payload is the new state of the mutated store.
type Event struct {
	Kind     Kind
	Language string
	Payload  any
}

// Handler receives change events for a subscribed kind.
type Handler func(Event)

// Notifier fans change events out to subscribers. Subscriptions are keyed so
// they can be removed again; listeners do not accumulate across store
// re-initializations the way an append-only callback list would.
type Notifier struct {
	mu       sync.Mutex
	nextID   int
	handlers map[Kind]map[int]Handler
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{
		handlers: map[Kind]map[int]Handler{},
	}
}

// Subscribe registers a handler for a kind and returns a subscription id
// usable with Unsubscribe.
func (n *Notifier) Subscribe(kind Kind, handler Handler) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	if n.handlers[kind] == nil {
		n.handlers[kind] = map[int]Handler{}
	}
	n.handlers[kind][n.nextID] = handler
	return n.nextID
}

// Unsubscribe removes a subscription. Unknown ids are a no-op.
func (n *Notifier) Unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, byID := range n.handlers {
		delete(byID, id)
	}
}

// Publish delivers the event to every handler subscribed to its kind.
// Handlers run synchronously on the publishing goroutine, matching the
// synchronous mutate-then-notify contract of the stores.
func (n *Notifier) Publish(event Event) {
	n.mu.Lock()
	byID := n.handlers[event.Kind]
	handlers := make([]Handler, 0, len(byID))
	for _, handler := range byID {
		handlers = append(handlers, handler)
	}
	n.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
