package ecs

// UpdateFrame is handed to every system during one Scheduler tick.
// Structural changes queued on Commands are applied once all systems ran.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	World     *World
}
