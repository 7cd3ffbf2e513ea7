package ecs

// System is a behaviour run once per frame by a Scheduler. Systems may hold
// Query and Singleton fields, which the Scheduler binds on registration, as
// well as their own state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
