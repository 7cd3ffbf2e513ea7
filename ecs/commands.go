package ecs

import (
	"github.com/rotisserie/eris"
	"go.uber.org/multierr"
)

// Commands buffers structural changes so they can be applied after a Query
// has finished walking the pools it would otherwise disturb.
type Commands struct {
	spawns   []spawnCommand
	destroys []Entity
	adds     []entityCommand
	removes  []entityCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	fn func(w *World, e Entity) error
}

type entityCommand struct {
	entity Entity
	apply  func(w *World) error
}

// Defer queues fn to run after every other queued command.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues the creation of an entity. fn receives the new entity and
// typically attaches its components; it may be nil.
func (c *Commands) Spawn(fn func(w *World, e Entity) error) {
	c.spawns = append(c.spawns, spawnCommand{fn: fn})
}

// Destroy queues the destruction of e.
func (c *Commands) Destroy(e Entity) {
	c.destroys = append(c.destroys, e)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.adds) + len(c.removes) + len(c.defers)
}

// QueueAdd queues attaching value to e.
func QueueAdd[T any](c *Commands, e Entity, value T) {
	c.adds = append(c.adds, entityCommand{
		entity: e,
		apply: func(w *World) error {
			return AddComponent(w, e, value)
		},
	})
}

// QueueRemove queues detaching e's T.
func QueueRemove[T any](c *Commands, e Entity) {
	c.removes = append(c.removes, entityCommand{
		entity: e,
		apply: func(w *World) error {
			RemoveComponent[T](w, e)
			return nil
		},
	})
}

// Flush applies the queued commands to w in the order destroys, removes, adds,
// spawns, defers, and resets the buffer. Adds and removes aimed at an entity
// destroyed in the same flush are dropped. Commands queued by spawn callbacks
// or deferred functions run in a further pass of the same flush. Every
// failing command is reported in the returned error; the others are still
// applied.
func (c *Commands) Flush(w *World) error {
	var err error
	var destroyed map[Entity]struct{}
	var cur commandMarks

	for {
		end := c.marks()
		if end == cur {
			break
		}

		if end.destroys > cur.destroys && destroyed == nil {
			destroyed = make(map[Entity]struct{}, end.destroys-cur.destroys)
		}
		for _, e := range c.destroys[cur.destroys:end.destroys] {
			w.Destroy(e)
			destroyed[e] = struct{}{}
		}

		for _, cmd := range c.removes[cur.removes:end.removes] {
			if _, ok := destroyed[cmd.entity]; ok {
				continue
			}
			err = multierr.Append(err, cmd.apply(w))
		}

		for _, cmd := range c.adds[cur.adds:end.adds] {
			if _, ok := destroyed[cmd.entity]; ok {
				continue
			}
			err = multierr.Append(err, cmd.apply(w))
		}

		for i := cur.spawns; i < end.spawns; i++ {
			fn := c.spawns[i].fn
			e := w.Create()
			if fn == nil {
				continue
			}
			if spawnErr := fn(w, e); spawnErr != nil {
				err = multierr.Append(err, eris.Wrapf(spawnErr, "spawn entity %d", e))
			}
		}

		for i := cur.defers; i < end.defers; i++ {
			c.defers[i]()
		}

		cur = end
	}

	clear(c.spawns)
	clear(c.adds)
	clear(c.removes)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]

	return err
}

// commandMarks records how far each buffer has been applied.
type commandMarks struct {
	spawns, destroys, adds, removes, defers int
}

func (c *Commands) marks() commandMarks {
	return commandMarks{
		spawns:   len(c.spawns),
		destroys: len(c.destroys),
		adds:     len(c.adds),
		removes:  len(c.removes),
		defers:   len(c.defers),
	}
}
