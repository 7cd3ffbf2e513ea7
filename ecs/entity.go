package ecs

import (
	"math"
	"strconv"
)

// Entity is a plain integer handle. It carries no data and no generation;
// two entities are the same entity when their values are equal.
type Entity int32

const (
	// Invalid marks an absent entity or an empty sparse slot.
	Invalid Entity = -1

	// MaxEntity is the largest id a World hands out.
	MaxEntity Entity = math.MaxInt32
)

// Valid reports whether e can be stored in a SparseSet.
func (e Entity) Valid() bool {
	return e >= 0
}

func (e Entity) String() string {
	return strconv.FormatInt(int64(e), 10)
}
