package debugui

import (
	"github.com/plus3/tickworld/ecs"
)

// Inspector is a system that draws the debug windows for the World it is
// registered with. Each window can be hidden through its Visible flag.
type Inspector struct {
	ecs.Order
	ecs.Toggle

	EntityBrowser      *EntityBrowser
	ComponentInspector *ComponentInspector
	RegistryViewer     *RegistryViewer
	PerformanceStats   *PerformanceStats
	QueryDebugger      *QueryDebugger
}

// NewInspector creates an Inspector with every window visible.
func NewInspector(priority int) *Inspector {
	return &Inspector{
		Order:              ecs.Order(priority),
		EntityBrowser:      NewEntityBrowser(100),
		ComponentInspector: NewComponentInspector(),
		RegistryViewer:     NewRegistryViewer(),
		PerformanceStats:   NewPerformanceStats(120),
		QueryDebugger:      NewQueryDebugger(),
	}
}

// Selected returns the entity picked in the browser or query debugger.
func (in *Inspector) Selected() (ecs.Entity, bool) {
	return in.EntityBrowser.Selected()
}

func (in *Inspector) Process(frame *ecs.UpdateFrame) {
	w := frame.World

	if in.QueryDebugger.Visible {
		if e, ok := in.QueryDebugger.Render(w); ok {
			in.EntityBrowser.Select(e)
		}
	}
	if in.EntityBrowser.Visible {
		in.EntityBrowser.Render(w)
	}
	if in.ComponentInspector.Visible {
		selected, ok := in.EntityBrowser.Selected()
		in.ComponentInspector.Render(w, selected, ok)
	}
	if in.RegistryViewer.Visible {
		in.RegistryViewer.Render(w)
	}
	if in.PerformanceStats.Visible {
		in.PerformanceStats.Render(w, float32(frame.DeltaTime))
	}
}
