package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventTongueSegmentSpawned = "tongue_segment_spawned"
	EventTongueJointSpawned   = "tongue_joint_spawned"
	EventTongueDespawned      = "tongue_despawned"
)

// TongueSegmentEvent describes a rope segment as it was spawned.
type TongueSegmentEvent struct {
	Entity     Entity
	Generation uint32
	X, Y       float64
	Rotation   float64
	Width      float64
	Length     float64
}

// TongueJointEvent describes a joint as it was spawned.
type TongueJointEvent struct {
	Entity     Entity
	Generation uint32
	BodyA      Entity
	BodyB      Entity
	Compliance float64
}

// TongueDespawnEvent lists every entity removed with one generation.
type TongueDespawnEvent struct {
	Generation uint32
	Entities   []Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
