package ecs

import "reflect"

// Singleton gives access to one value of type T that belongs to the World
// rather than to an entity. Use it for global game state or configuration.
type Singleton[T any] struct {
	world *World
	ptr   *T
}

// NewSingleton returns an accessor for T's singleton in w. If none exists yet
// it is created from initializer, or from the zero value.
func NewSingleton[T any](w *World, initializer ...T) *Singleton[T] {
	if _, ok := w.singletons.Get(typeKeyFor[T]()); !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		SetSingleton(w, value)
	}

	s := &Singleton[T]{}
	s.Init(w)
	return s
}

// SetSingleton stores value as T's singleton in w. An existing singleton is
// overwritten in place, so pointers returned by Get stay valid.
func SetSingleton[T any](w *World, value T) {
	key := typeKeyFor[T]()
	if v, ok := w.singletons.Get(key); ok {
		*v.(*T) = value
		return
	}
	ptr := new(T)
	*ptr = value
	w.singletons.Put(key, ptr)
	w.singletonTypes = append(w.singletonTypes, reflect.TypeFor[T]())
}

// Init binds the accessor to w. The Scheduler calls it for Singleton fields of systems.
func (s *Singleton[T]) Init(w *World) {
	s.world = w
	s.ptr = nil
	s.updateCache()
}

// Get returns a pointer to the singleton, or nil if it has not been set.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.updateCache()
	}
	return s.ptr
}

// Exists reports whether the singleton has been set.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.world == nil {
		return
	}
	if v, ok := s.world.singletons.Get(typeKeyFor[T]()); ok {
		s.ptr = v.(*T)
	}
}
