package core

import "github.com/golang/geo/r2"

// EventKind identifies what the input source delivered for a tick.
type EventKind int

const (
	EventNone  EventKind = iota // No input this tick
	EventClick                  // Pointer press at Pos
	EventQuit                   // Terminate the frame loop
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventClick:
		return "Click"
	case EventQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is the single input delivered to the game for one tick.
// Pos is in play-area coordinates and only meaningful for EventClick.
type Event struct {
	Kind EventKind
	Pos  r2.Point
}

// NoEvent is the empty input.
var NoEvent = Event{Kind: EventNone}

// ClickAt builds a click event at the given play-area position.
func ClickAt(x, y float64) Event {
	return Event{Kind: EventClick, Pos: r2.Point{X: x, Y: y}}
}

// Quit builds a quit event.
func Quit() Event {
	return Event{Kind: EventQuit}
}

// IsClick reports whether the event is a pointer press.
func (e Event) IsClick() bool {
	return e.Kind == EventClick
}

// EventQueue buffers input that arrives between ticks. The frame driver
// drains exactly one event per tick, oldest first.
type EventQueue struct {
	events []Event
}

// Push appends an event to the queue.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Pop removes and returns the oldest event, or NoEvent when empty.
func (q *EventQueue) Pop() Event {
	if len(q.events) == 0 {
		return NoEvent
	}
	e := q.events[0]
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = nil
	}
	return e
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
