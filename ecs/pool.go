package ecs

import (
	"reflect"
)

const (
	minPoolCapacity    = 16
	poolDoublingCutoff = 1024
)

// AnyPool is the type-erased view of a ComponentPool. The World keeps its
// pools behind this interface so Destroy can sweep them without knowing T.
type AnyPool interface {
	ComponentType() reflect.Type
	Contains(e Entity) bool
	RemoveIfContains(e Entity) bool
	GetAny(e Entity) (any, bool)
	GetPointer(e Entity) any
	Set() *SparseSet
	Len() int
	Cap() int
	Clear()
}

// ComponentPool stores one value of type T per entity. The dense index of the
// inner SparseSet doubles as the index into values, so values[d] always belongs
// to Set().Dense()[d].
type ComponentPool[T any] struct {
	set    *SparseSet
	values []T
}

// NewComponentPool creates an empty pool. pageSize must be a positive power of two.
func NewComponentPool[T any](pageSize int) (*ComponentPool[T], error) {
	set, err := NewSparseSet(pageSize)
	if err != nil {
		return nil, err
	}
	return newPoolWithSet[T](set), nil
}

func newComponentPool[T any](pageSize int) *ComponentPool[T] {
	return newPoolWithSet[T](newSparseSet(pageSize))
}

func newPoolWithSet[T any](set *SparseSet) *ComponentPool[T] {
	return &ComponentPool[T]{
		set:    set,
		values: make([]T, max(minPoolCapacity, set.PageSize())),
	}
}

// Add registers e and stores value at its new dense index.
// It fails with the SparseSet's errors for negative or duplicate entities.
func (p *ComponentPool[T]) Add(e Entity, value T) error {
	if err := p.set.Add(e); err != nil {
		return err
	}
	d := p.set.Len() - 1
	p.ensureCapacity(d + 1)
	p.values[d] = value
	return nil
}

// Get returns a pointer to the value stored for e. It does not check that e is
// present: callers must test Contains first, and an absent entity panics.
// The pointer is valid only until the next Add, RemoveIfContains or Clear.
func (p *ComponentPool[T]) Get(e Entity) *T {
	return &p.values[p.set.IndexOf(e)]
}

// TryGet returns a pointer to the value stored for e, or false if e is absent.
func (p *ComponentPool[T]) TryGet(e Entity) (*T, bool) {
	d, ok := p.set.TryIndex(e)
	if !ok {
		return nil, false
	}
	return &p.values[d], true
}

// GetAny returns a copy of the value stored for e as an interface.
func (p *ComponentPool[T]) GetAny(e Entity) (any, bool) {
	v, ok := p.TryGet(e)
	if !ok {
		return nil, false
	}
	return *v, true
}

// GetPointer returns a *T for e as an interface, or nil if e is absent.
// Tooling uses it to edit values through reflection.
func (p *ComponentPool[T]) GetPointer(e Entity) any {
	v, ok := p.TryGet(e)
	if !ok {
		return nil
	}
	return v
}

// Contains reports whether e has a value in this pool.
func (p *ComponentPool[T]) Contains(e Entity) bool {
	return p.set.Contains(e)
}

// RemoveIfContains removes e and its value. It reports whether e was present.
func (p *ComponentPool[T]) RemoveIfContains(e Entity) bool {
	d, ok := p.set.TryIndex(e)
	if !ok {
		return false
	}

	// Mirror the swap the set is about to do.
	last := p.set.Len() - 1
	p.values[d] = p.values[last]
	var zero T
	p.values[last] = zero

	p.set.Remove(e)
	return true
}

// Clear removes every entity and value. Capacity is kept.
func (p *ComponentPool[T]) Clear() {
	clear(p.values[:p.set.Len()])
	p.set.Clear()
}

// Len returns the number of stored values.
func (p *ComponentPool[T]) Len() int {
	return p.set.Len()
}

// Cap returns the size of the value array.
func (p *ComponentPool[T]) Cap() int {
	return len(p.values)
}

// Set returns the pool's SparseSet, for joins.
func (p *ComponentPool[T]) Set() *SparseSet {
	return p.set
}

// Entities returns the entities in dense order.
func (p *ComponentPool[T]) Entities() []Entity {
	return p.set.Dense()
}

// Values returns the stored values aligned with Entities.
func (p *ComponentPool[T]) Values() []T {
	return p.values[:p.set.Len()]
}

// ComponentType returns the reflect.Type of T.
func (p *ComponentPool[T]) ComponentType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (p *ComponentPool[T]) ensureCapacity(n int) {
	if n <= len(p.values) {
		return
	}
	grown := make([]T, growCapacity(len(p.values), n))
	copy(grown, p.values)
	p.values = grown
}

// growCapacity doubles small arrays and grows large ones by half until need fits.
func growCapacity(current, need int) int {
	c := max(current, minPoolCapacity)
	for c < need {
		if c < poolDoublingCutoff {
			c *= 2
		} else {
			c += c / 2
		}
	}
	return c
}

var _ AnyPool = (*ComponentPool[int])(nil)
