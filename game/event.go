package game

import (
	"log"
)

// EventType identifies a simulation event
type EventType string

const (
	EventRunStarted   EventType = "RunStarted"
	EventRunEnded     EventType = "RunEnded"
	EventSwing        EventType = "Swing"
	EventHit          EventType = "Hit"
	EventActorKilled  EventType = "ActorKilled"
	EventRockBonk     EventType = "RockBonk"
	EventCoinCredited EventType = "CoinCredited"
	EventExplosion    EventType = "Explosion"
	EventBarrage      EventType = "Barrage"
	EventIslandReset  EventType = "IslandReset"
)

// Event is a record of something that happened during a tick
type Event struct {
	Type EventType

	// X, Y is where it happened, when that applies
	X, Y float64

	// Amount carries damage, gold, or a count depending on Type
	Amount float64

	Kind ActorKind
}

// Listener receives events when the queue is drained
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// EventQueue buffers events during a tick and dispatches them once at the
// end of the frame, so listeners never observe a half-updated simulation.
type EventQueue struct {
	pending   []Event
	listeners map[EventType][]Listener
	all       []Listener
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{
		pending:   make([]Event, 0, 64),
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers a listener for one event type
func (q *EventQueue) Subscribe(eventType EventType, listener Listener) {
	q.listeners[eventType] = append(q.listeners[eventType], listener)
}

// SubscribeAll registers a listener for every event type
func (q *EventQueue) SubscribeAll(listener Listener) {
	q.all = append(q.all, listener)
}

// Unsubscribe removes a listener from one event type
func (q *EventQueue) Unsubscribe(eventType EventType, listener Listener) {
	listeners := q.listeners[eventType]
	for i, l := range listeners {
		if l == listener {
			q.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// Push buffers an event until the next Drain
func (q *EventQueue) Push(event Event) {
	q.pending = append(q.pending, event)
}

// Len returns the number of buffered events
func (q *EventQueue) Len() int {
	return len(q.pending)
}

// Drain dispatches buffered events in order and empties the queue. Events
// pushed by listeners during the drain are delivered on the next Drain.
func (q *EventQueue) Drain() {
	if len(q.pending) == 0 {
		return
	}
	batch := q.pending
	q.pending = make([]Event, 0, cap(batch))

	for _, event := range batch {
		for _, listener := range q.listeners[event.Type] {
			listener.OnEvent(event)
		}
		for _, listener := range q.all {
			listener.OnEvent(event)
		}
	}
}

// Clear drops buffered events without dispatching them
func (q *EventQueue) Clear() {
	q.pending = q.pending[:0]
}

// LogListener writes run-level events to a logger
type LogListener struct {
	Logger *log.Logger
}

func (l *LogListener) OnEvent(event Event) {
	switch event.Type {
	case EventRunStarted:
		l.Logger.Printf("run started with %.0f actors", event.Amount)
	case EventRunEnded:
		l.Logger.Printf("run ended, gold %.0f", event.Amount)
	case EventBarrage:
		l.Logger.Printf("cannon barrage of %.0f balls", event.Amount)
	case EventIslandReset:
		l.Logger.Printf("island regenerated")
	case EventActorKilled:
		l.Logger.Printf("%s destroyed at (%.0f, %.0f)", event.Kind, event.X, event.Y)
	}
}
