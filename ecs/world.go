package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/flickyfrog/ecs/component"
)

var (
	ErrNoEntity         = errors.New("ecs: no entity with component")
	ErrMultipleEntities = errors.New("ecs: more than one entity with component")
)

// Frame is the per-tick context the game loop hands to every system through
// the world.
type Frame struct {
	DT   float64
	Tick uint64
}

// World owns entities, their components, and the frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	frame    Frame
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent attaches or replaces the component identified by key.
func (w *World) AddComponent(e Entity, key component.ComponentKey, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if key == nil || key.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(key.ID(), true).Set(e.id(), value)
	return nil
}

// RemoveComponent detaches the component identified by key.
func (w *World) RemoveComponent(e Entity, key component.ComponentKey) bool {
	if w == nil || !w.entities.isAlive(e) || key == nil {
		return false
	}
	return w.store(key.ID(), false).Remove(e.id())
}

// HasComponent reports whether e carries the component identified by key.
func (w *World) HasComponent(e Entity, key component.ComponentKey) bool {
	if w == nil || !w.entities.isAlive(e) || key == nil {
		return false
	}
	return w.store(key.ID(), false).Has(e.id())
}

// GetComponent returns the raw component value identified by key.
func (w *World) GetComponent(e Entity, key component.ComponentKey) (any, bool) {
	if !w.HasComponent(e, key) {
		return nil, false
	}
	return w.store(key.ID(), false).Get(e.id()), true
}

// Query returns the live entities carrying every given component.
func (w *World) Query(keys ...component.ComponentKey) []Entity {
	if w == nil || len(keys) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(keys))
	for _, k := range keys {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	ids := intersectIDs(sets)
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns any live entity carrying the component identified by key.
func (w *World) First(key component.ComponentKey) (Entity, bool) {
	found := w.Query(key)
	if len(found) == 0 {
		return 0, false
	}
	return found[0], true
}

// Single returns the only entity carrying key, failing when there is none or
// more than one.
func (w *World) Single(key component.ComponentKey) (Entity, error) {
	found := w.Query(key)
	switch len(found) {
	case 0:
		return 0, fmt.Errorf("component %d: %w", key.ID(), ErrNoEntity)
	case 1:
		return found[0], nil
	default:
		return 0, fmt.Errorf("component %d: %d entities: %w", key.ID(), len(found), ErrMultipleEntities)
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Frame returns the context of the tick being simulated.
func (w *World) Frame() Frame {
	if w == nil {
		return Frame{}
	}
	return w.frame
}

// SetFrame installs the context for the next tick.
func (w *World) SetFrame(f Frame) {
	if w == nil {
		return
	}
	w.frame = f
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}
