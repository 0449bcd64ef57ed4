package resume2pdf

// EventKind identifies a lifecycle transition of an export.
type EventKind int

// Lifecycle events. Every export emits EventStart, then exactly one of
// EventComplete or EventError.
const (
	EventStart EventKind = iota + 1
	EventComplete
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventComplete:
		return "complete"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is delivered to observers.
type Event struct {
	Kind   EventKind
	Source string  // URL, or "inline" for HTML input
	Result *Result // set for EventComplete and EventError
	Err    error   // set for EventError
}

// Observer receives lifecycle events synchronously, in order.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}
