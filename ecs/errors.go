package ecs

import "github.com/rotisserie/eris"

var (
	// ErrNegativeEntity is returned when a negative id is added to a set.
	ErrNegativeEntity = eris.New("entity id must not be negative")

	// ErrDuplicateEntity is returned when an id is added to a set that already holds it.
	ErrDuplicateEntity = eris.New("entity already present")

	// ErrInvalidPageSize is returned when a page size is not a positive power of two.
	ErrInvalidPageSize = eris.New("page size must be a positive power of two")

	// ErrEntitiesExhausted is raised by World.Create once every id has been handed out.
	ErrEntitiesExhausted = eris.New("entity ids exhausted")
)
