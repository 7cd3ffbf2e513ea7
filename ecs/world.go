package ecs

import (
	"math/bits"
	"reflect"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// DefaultMaxEntities is the sizing hint used when NewWorld gets a non-positive one.
const DefaultMaxEntities = 1024

// World owns the entity id counter and one ComponentPool per component type.
// Pools are created the first time their type is used and live as long as the
// World. A World is not safe for concurrent use.
type World struct {
	nextEntity int64
	pageSize   int

	pools          *intmap.Map[int, AnyPool]
	poolOrder      []AnyPool
	singletons     *intmap.Map[int, any]
	singletonTypes []reflect.Type

	logger *zap.Logger
}

// NewWorld creates an empty World. maxEntities is a sizing hint: each pool's
// sparse pages hold maxEntities slots, rounded up to a power of two.
func NewWorld(maxEntities int, opts ...Option) *World {
	o := applyOptions(opts)
	if maxEntities <= 0 {
		maxEntities = DefaultMaxEntities
	}
	return &World{
		pageSize:   roundUpPowerOfTwo(maxEntities),
		pools:      intmap.New[int, AnyPool](32),
		singletons: intmap.New[int, any](8),
		logger:     o.logger,
	}
}

func roundUpPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Create returns a fresh entity. Ids start at 0, only grow and are never reused.
// It panics once MaxEntity ids have been handed out.
func (w *World) Create() Entity {
	if w.nextEntity > int64(MaxEntity) {
		panic(ErrEntitiesExhausted)
	}
	e := Entity(w.nextEntity)
	w.nextEntity++
	return e
}

// Destroy removes e from every pool. The id is not recycled.
func (w *World) Destroy(e Entity) {
	for _, p := range w.poolOrder {
		p.RemoveIfContains(e)
	}
}

// Clear empties every pool. Pools stay registered and the id counter keeps going.
func (w *World) Clear() {
	for _, p := range w.poolOrder {
		p.Clear()
	}
}

// CreatedCount returns how many ids Create has handed out.
func (w *World) CreatedCount() int64 {
	return w.nextEntity
}

// Pools returns the registered pools in creation order.
func (w *World) Pools() []AnyPool {
	return w.poolOrder
}

// PageSize returns the sparse page size given to new pools.
func (w *World) PageSize() int {
	return w.pageSize
}

// Logger returns the World's logger.
func (w *World) Logger() *zap.Logger {
	return w.logger
}

// Check returns the pool for T, creating and registering it on first use.
func Check[T any](w *World) *ComponentPool[T] {
	key := typeKeyFor[T]()
	if p, ok := w.pools.Get(key); ok {
		return p.(*ComponentPool[T])
	}

	pool := newComponentPool[T](w.pageSize)
	w.pools.Put(key, pool)
	w.poolOrder = append(w.poolOrder, pool)

	w.logger.Debug("component pool created",
		zap.Stringer("type", pool.ComponentType()),
		zap.Int("page_size", w.pageSize),
		zap.Int("pools", len(w.poolOrder)),
	)
	return pool
}

// AddComponent attaches value to e. It fails if e already has a T or is negative.
func AddComponent[T any](w *World, e Entity, value T) error {
	return Check[T](w).Add(e, value)
}

// GetComponent returns a pointer to e's T without checking that it exists.
// An absent component panics; use TryGetComponent when unsure.
func GetComponent[T any](w *World, e Entity) *T {
	return Check[T](w).Get(e)
}

// TryGetComponent returns a copy of e's T and true, or the zero value and false.
func TryGetComponent[T any](w *World, e Entity) (T, bool) {
	v, ok := Check[T](w).TryGet(e)
	if !ok {
		var zero T
		return zero, false
	}
	return *v, true
}

// HasComponent reports whether e has a T.
func HasComponent[T any](w *World, e Entity) bool {
	return Check[T](w).Contains(e)
}

// RemoveComponent detaches e's T. It reports whether there was one.
func RemoveComponent[T any](w *World, e Entity) bool {
	return Check[T](w).RemoveIfContains(e)
}
