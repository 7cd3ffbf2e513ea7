package ecs

import "iter"

// Cursor walks the entities present in every set of a join. It drives the
// walk from the smallest set (the pivot) and tests membership in the others.
//
// A Cursor reads the pivot's dense array on every call to Next, so it sees
// the sets as they are at that moment. Adding or removing entities in any of
// the joined sets while a Cursor is in use may skip or repeat entities.
type Cursor struct {
	sets    []*SparseSet
	pivot   int
	next    int
	current Entity
}

// NewCursor starts a join over sets. With no sets the cursor is empty.
func NewCursor(sets ...*SparseSet) Cursor {
	return Cursor{
		sets:    sets,
		pivot:   pickPivot(sets),
		current: Invalid,
	}
}

// pickPivot returns the position of the smallest set; ties keep the earliest.
func pickPivot(sets []*SparseSet) int {
	pivot := 0
	for i := 1; i < len(sets); i++ {
		if sets[i].Len() < sets[pivot].Len() {
			pivot = i
		}
	}
	return pivot
}

// Next advances to the next matching entity and reports whether there is one.
func (c *Cursor) Next() bool {
	if len(c.sets) == 0 {
		return false
	}
	for {
		dense := c.sets[c.pivot].Dense()
		if c.next >= len(dense) {
			c.current = Invalid
			return false
		}
		e := dense[c.next]
		c.next++
		if c.matches(e) {
			c.current = e
			return true
		}
	}
}

// Entity returns the entity the cursor is on, or Invalid before the first
// Next and after the last.
func (c *Cursor) Entity() Entity {
	return c.current
}

// Pivot returns the set driving the walk, or nil for an empty cursor.
func (c *Cursor) Pivot() *SparseSet {
	if len(c.sets) == 0 {
		return nil
	}
	return c.sets[c.pivot]
}

// Reset rewinds the cursor and picks the pivot again.
func (c *Cursor) Reset() {
	c.pivot = pickPivot(c.sets)
	c.next = 0
	c.current = Invalid
}

func (c *Cursor) matches(e Entity) bool {
	for i, s := range c.sets {
		if i == c.pivot {
			continue
		}
		if !s.Contains(e) {
			return false
		}
	}
	return true
}

// Join yields every entity present in all of sets.
func Join(sets ...*SparseSet) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		c := NewCursor(sets...)
		for c.Next() {
			if !yield(c.Entity()) {
				return
			}
		}
	}
}
