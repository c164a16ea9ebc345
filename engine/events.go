// Package engine owns the simulation world: body population, the per-tick
// step pipeline, and the event queue that reports state changes to UI
// collaborators.
//
// The event queue exists for UI bookkeeping only. Physics never reads it;
// renderers and the audio layer poll it once per frame. Producers push from
// the tick (single-threaded), the consumer is the frontend loop, and the
// ring overwrites its oldest entries when it falls behind — stale UI events
// are droppable by design.
package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/gravity-well/physics"
)

// EventType classifies a world event
type EventType int

const (
	// EventBodyAdded fires when AddBody accepts a body
	EventBodyAdded EventType = iota

	// EventBodyRemoved fires when RemoveBody detaches a body
	EventBodyRemoved

	// EventCollision fires once per resolved destructive collision, carrying
	// the participants, the outcome size, and the updated lifetime counter
	EventCollision

	// EventWorldCleared fires when Clear resets the world
	EventWorldCleared

	// EventStepDone fires at the end of every tick with a population summary
	EventStepDone
)

// String returns the event type name for debugging
func (e EventType) String() string {
	switch e {
	case EventBodyAdded:
		return "BodyAdded"
	case EventBodyRemoved:
		return "BodyRemoved"
	case EventCollision:
		return "Collision"
	case EventWorldCleared:
		return "WorldCleared"
	case EventStepDone:
		return "StepDone"
	default:
		return "Unknown"
	}
}

// Event is one world notification. A and B are collision participants
// (already removed from the world when observed); Generated counts the
// replacement bodies; Collisions and BodyCount snapshot the world counters
// at emission time.
type Event struct {
	Type       EventType
	A, B       *physics.Body
	Generated  int
	Collisions int64
	BodyCount  int
	Time       float64
}

const eventQueueSize = 128

// EventQueue is a fixed-size ring buffer. Push claims slots with a CAS so a
// frontend goroutine can stay decoupled from the tick; Consume is
// single-consumer. When full, the oldest events are overwritten.
type EventQueue struct {
	events [eventQueueSize]Event
	head   atomic.Uint64
	tail   atomic.Uint64
}

// Push appends an event, overwriting the oldest when the ring is full
func (q *EventQueue) Push(ev Event) {
	for {
		tail := q.tail.Load()
		if !q.tail.CompareAndSwap(tail, tail+1) {
			continue
		}
		q.events[tail%eventQueueSize] = ev

		// Drop the oldest entries once the writer laps the reader
		head := q.head.Load()
		if tail+1-head > eventQueueSize {
			q.head.CompareAndSwap(head, tail+1-eventQueueSize)
		}
		return
	}
}

// Consume returns all pending events in FIFO order and marks them consumed.
// Single consumer only.
func (q *EventQueue) Consume() []Event {
	head := q.head.Load()
	tail := q.tail.Load()

	available := tail - head
	if available == 0 {
		return nil
	}
	if available > eventQueueSize {
		available = eventQueueSize
		head = tail - eventQueueSize
	}

	out := make([]Event, available)
	for i := uint64(0); i < available; i++ {
		out[i] = q.events[(head+i)%eventQueueSize]
	}

	for !q.head.CompareAndSwap(head, tail) {
		head = q.head.Load()
		tail = q.tail.Load()
		if head == tail {
			break
		}
	}
	return out
}

// Len reports the number of pending events (snapshot)
func (q *EventQueue) Len() int {
	n := q.tail.Load() - q.head.Load()
	if n > eventQueueSize {
		return eventQueueSize
	}
	return int(n)
}
