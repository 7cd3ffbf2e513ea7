package ecs_test

import (
	"iter"

	"github.com/plus3/sparsecs/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type Inventory struct {
	Items []string
}

func collect(seq iter.Seq[ecs.Entity]) []ecs.Entity {
	var out []ecs.Entity
	for e := range seq {
		out = append(out, e)
	}
	return out
}
