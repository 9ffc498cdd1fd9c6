package engine

// Handler processes events scheduled against it.
type Handler interface {
	Handle(e Event) error
}

// Event is something scheduled to happen at a given simulated time.
type Event interface {
	Time() VTimeInSec
	Handler() Handler
	IsSecondary() bool
}

// EventBase provides the bookkeeping shared by all events.
type EventBase struct {
	ID        string
	Tm        VTimeInSec
	Hdlr      Handler
	Secondary bool
}

// NewEventBase creates an EventBase ready to schedule.
func NewEventBase(t VTimeInSec, handler Handler) EventBase {
	return EventBase{
		ID:   GetIDGenerator().Generate(),
		Tm:   t,
		Hdlr: handler,
	}
}

// Time returns the time the event fires.
func (e EventBase) Time() VTimeInSec { return e.Tm }

// Handler returns the handler responsible for the event.
func (e EventBase) Handler() Handler { return e.Hdlr }

// IsSecondary reports whether the event is processed after all primary
// events at the same timestamp.
func (e EventBase) IsSecondary() bool { return e.Secondary }

// TickEvent is the event used to drive a TickingComponent forward.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a TickEvent for the given handler and time.
func MakeTickEvent(handler Handler, t VTimeInSec) TickEvent {
	return TickEvent{EventBase: NewEventBase(t, handler)}
}
