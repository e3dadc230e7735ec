package ecs

import "github.com/milk9111/flickyfrog/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.AddComponent(e, handle, value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle)
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.GetComponent(e, handle)
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// ForEach calls fn with a copy of every T component and stores the copy back
// afterwards, unless fn destroyed the entity or removed the component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v *T)) {
	for _, e := range w.Query(handle) {
		v, ok := Get(w, e, handle)
		if !ok {
			continue
		}
		fn(e, &v)
		if Has(w, e, handle) {
			_ = Add(w, e, handle, v)
		}
	}
}
