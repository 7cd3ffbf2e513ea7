package ecs

import (
	"iter"
)

// Query yields the entities that carry a T.
// Queries are cheap to build; a zero Query yields nothing until Init is called.
type Query[T any] struct {
	pool *ComponentPool[T]
	sets []*SparseSet
}

// NewQuery creates a Query bound to w, creating T's pool if needed.
func NewQuery[T any](w *World) *Query[T] {
	q := &Query[T]{}
	q.Init(w)
	return q
}

// Init binds the query to w. The Scheduler calls it for Query fields of systems.
func (q *Query[T]) Init(w *World) {
	q.pool = Check[T](w)
	q.sets = []*SparseSet{q.pool.Set()}
}

// Cursor starts a new walk over the matching entities.
func (q *Query[T]) Cursor() Cursor {
	return NewCursor(q.sets...)
}

// Iter yields the matching entities in the pool's dense order.
func (q *Query[T]) Iter() iter.Seq[Entity] {
	return Join(q.sets...)
}

// Each calls fn with every matching entity and a pointer to its T.
// fn must not add or remove T components.
func (q *Query[T]) Each(fn func(Entity, *T)) {
	c := q.Cursor()
	for c.Next() {
		e := c.Entity()
		fn(e, q.pool.Get(e))
	}
}

// Query2 yields the entities that carry both an A and a B.
type Query2[A, B any] struct {
	a    *ComponentPool[A]
	b    *ComponentPool[B]
	sets []*SparseSet
}

// NewQuery2 creates a Query2 bound to w.
func NewQuery2[A, B any](w *World) *Query2[A, B] {
	q := &Query2[A, B]{}
	q.Init(w)
	return q
}

// Init binds the query to w.
func (q *Query2[A, B]) Init(w *World) {
	q.a = Check[A](w)
	q.b = Check[B](w)
	q.sets = []*SparseSet{q.a.Set(), q.b.Set()}
}

// Cursor starts a new walk driven by the smaller of the two pools.
func (q *Query2[A, B]) Cursor() Cursor {
	return NewCursor(q.sets...)
}

// Iter yields the matching entities.
func (q *Query2[A, B]) Iter() iter.Seq[Entity] {
	return Join(q.sets...)
}

// Each calls fn with every matching entity and pointers to its components.
func (q *Query2[A, B]) Each(fn func(Entity, *A, *B)) {
	c := q.Cursor()
	for c.Next() {
		e := c.Entity()
		fn(e, q.a.Get(e), q.b.Get(e))
	}
}

// Query3 yields the entities that carry an A, a B and a C.
type Query3[A, B, C any] struct {
	a    *ComponentPool[A]
	b    *ComponentPool[B]
	c    *ComponentPool[C]
	sets []*SparseSet
}

// NewQuery3 creates a Query3 bound to w.
func NewQuery3[A, B, C any](w *World) *Query3[A, B, C] {
	q := &Query3[A, B, C]{}
	q.Init(w)
	return q
}

// Init binds the query to w.
func (q *Query3[A, B, C]) Init(w *World) {
	q.a = Check[A](w)
	q.b = Check[B](w)
	q.c = Check[C](w)
	q.sets = []*SparseSet{q.a.Set(), q.b.Set(), q.c.Set()}
}

// Cursor starts a new walk driven by the smallest of the three pools.
func (q *Query3[A, B, C]) Cursor() Cursor {
	return NewCursor(q.sets...)
}

// Iter yields the matching entities.
func (q *Query3[A, B, C]) Iter() iter.Seq[Entity] {
	return Join(q.sets...)
}

// Each calls fn with every matching entity and pointers to its components.
func (q *Query3[A, B, C]) Each(fn func(Entity, *A, *B, *C)) {
	cur := q.Cursor()
	for cur.Next() {
		e := cur.Entity()
		fn(e, q.a.Get(e), q.b.Get(e), q.c.Get(e))
	}
}
