package ecs

// UpdateFrame is passed to every system during the RunningSystems phase.
// The same value is reused across frames; do not retain it.
type UpdateFrame struct {
	// DeltaTime is the World's delta for this frame, in seconds.
	DeltaTime float64
	// Index is the 1-based number of the frame.
	Index uint64
	World *World
}
