package ecs

import (
	"context"
	"time"
)

// WorldStats is a snapshot of a World's bookkeeping.
type WorldStats struct {
	Frame               uint64
	State               FrameState
	LivingEntities      int
	Slots               int
	FreeSlots           int
	RetiredSlots        int
	ComponentTypes      int
	PendingDestructions int
	PendingRefreshes    int
	Managers            []RegistrationInfo
	Systems             []SystemStats
}

// RegistrationInfo describes a registered manager.
type RegistrationInfo struct {
	Name     string
	Priority int
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Priority       int
	Enabled        bool
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Stats returns a snapshot of w. Managers and systems are listed in execution order.
func (w *World) Stats() WorldStats {
	stats := WorldStats{
		Frame:               w.frame.Index,
		State:               w.state,
		LivingEntities:      w.entities.living,
		Slots:               len(w.entities.slots),
		FreeSlots:           len(w.entities.freeList),
		RetiredSlots:        w.entities.retired,
		ComponentTypes:      w.registry.Len(),
		PendingDestructions: w.destructions.len(),
		PendingRefreshes:    w.refreshes.len(),
		Managers:            make([]RegistrationInfo, 0, w.managers.len()),
		Systems:             make([]SystemStats, 0, w.systems.len()),
	}

	for reg := range w.managers.all() {
		stats.Managers = append(stats.Managers, RegistrationInfo{Name: reg.name, Priority: reg.priority})
	}
	for reg := range w.systems.all() {
		stats.Systems = append(stats.Systems, SystemStats{
			Name:           reg.name,
			Priority:       reg.priority,
			Enabled:        isEnabled(reg.value),
			ExecutionCount: reg.stats.count,
			MinDuration:    reg.stats.min,
			MaxDuration:    reg.stats.max,
			AvgDuration:    reg.stats.avg(),
			LastDuration:   reg.stats.last,
			TotalDuration:  reg.stats.total,
		})
	}
	return stats
}

// Run calls Update every interval until ctx is cancelled. Before each frame
// the delta is set to the wall-clock time since the previous tick, capped by
// WithMaxDelta. Cancellation is only observed between frames.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(lastTime)
			lastTime = now
			if w.maxDelta > 0 && elapsed > w.maxDelta {
				elapsed = w.maxDelta
			}
			w.SetDelta(elapsed.Seconds())
			w.Update()
		}
	}
}
