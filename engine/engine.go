package engine

import "log"

// TimeTeller reports the current simulated time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler accepts future events.
type EventScheduler interface {
	Schedule(e Event)
}

// Engine drives a discrete-event simulation to completion.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	Run() error
}

// SerialEngine processes events strictly one at a time, in time order.
// Every component driven by this engine is single-threaded and
// cooperative, so there is nothing for a parallel engine to parallelize.
type SerialEngine struct {
	HookableBase

	now            VTimeInSec
	queue          EventQueue
	secondaryQueue EventQueue
}

// NewSerialEngine creates a SerialEngine with empty event queues.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		queue:          NewEventQueue(),
		secondaryQueue: NewEventQueue(),
	}
}

// Schedule enqueues an event to be processed in the future.
func (e *SerialEngine) Schedule(evt Event) {
	if evt.Time() < e.now {
		log.Panic("cannot schedule an event in the past")
	}

	if evt.IsSecondary() {
		e.secondaryQueue.Push(evt)
		return
	}

	e.queue.Push(evt)
}

// CurrentTime returns the time of the event currently being processed.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	return e.now
}

// Run drains the event queues until both are empty.
func (e *SerialEngine) Run() error {
	for !e.empty() {
		evt := e.next()
		e.now = evt.Time()

		e.InvokeHook(HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt})

		if err := evt.Handler().Handle(evt); err != nil {
			return err
		}

		e.InvokeHook(HookCtx{Domain: e, Pos: HookPosAfterEvent, Item: evt})
	}

	return nil
}

func (e *SerialEngine) empty() bool {
	return e.queue.Len() == 0 && e.secondaryQueue.Len() == 0
}

func (e *SerialEngine) next() Event {
	if e.queue.Len() == 0 {
		return e.secondaryQueue.Pop()
	}

	if e.secondaryQueue.Len() == 0 {
		return e.queue.Pop()
	}

	if e.queue.Peek().Time() <= e.secondaryQueue.Peek().Time() {
		return e.queue.Pop()
	}

	return e.secondaryQueue.Pop()
}
