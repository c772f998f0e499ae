package ecs

import (
	"time"

	"go.uber.org/zap"
)

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithLogger sets the logger used for lifecycle events. The default discards
// everything.
func WithLogger(logger *zap.Logger) WorldOption {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithRegistry shares a component registry between worlds so type ids agree.
func WithRegistry(r *ComponentRegistry) WorldOption {
	return func(w *World) {
		if r != nil {
			w.registry = r
		}
	}
}

// WithInitialCapacity preallocates room for n entities.
func WithInitialCapacity(n int) WorldOption {
	return func(w *World) {
		if n > 0 {
			w.capacity = n
		}
	}
}

// WithMaxDelta caps the delta Run computes from wall-clock time, so a stall
// does not produce one huge simulation step. Zero disables the cap.
func WithMaxDelta(d time.Duration) WorldOption {
	return func(w *World) {
		w.maxDelta = d
	}
}
