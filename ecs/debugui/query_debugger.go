package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickworld/ecs"
)

// maxListedMatches bounds the entity list drawn for a query.
const maxListedMatches = 50

// QueryDebugger lets the user tick component types and lists the entities
// that hold all of them.
type QueryDebugger struct {
	Visible bool

	selected map[ecs.ComponentTypeId]bool
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{
		Visible:  true,
		selected: make(map[ecs.ComponentTypeId]bool),
	}
}

// Render draws the window and returns an entity the user clicked, if any.
func (qd *QueryDebugger) Render(w *ecs.World) (ecs.Entity, bool) {
	var clicked ecs.Entity
	var hasClick bool

	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return clicked, false
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for ct := range w.Registry().Types() {
		selected := qd.selected[ct.Id]
		if imgui.Checkbox(ct.Name(), &selected) {
			if selected {
				qd.selected[ct.Id] = true
			} else {
				delete(qd.selected, ct.Id)
			}
		}
	}

	imgui.Separator()

	if len(qd.selected) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return clicked, false
	}

	matches := qd.Match(w)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Matches") {
		for i, e := range matches {
			if i == maxListedMatches {
				imgui.Text(fmt.Sprintf("... %d more", len(matches)-maxListedMatches))
				break
			}
			if imgui.SelectableBoolV(e.String(), false, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				clicked, hasClick = e, true
			}
		}
		imgui.TreePop()
	}

	imgui.End()
	return clicked, hasClick
}

// Select adds a component type to the query.
func (qd *QueryDebugger) Select(id ecs.ComponentTypeId) {
	qd.selected[id] = true
}

// Match returns the living entities holding every selected component type.
func (qd *QueryDebugger) Match(w *ecs.World) []ecs.Entity {
	var matches []ecs.Entity
	for e := range w.Entities() {
		ok := true
		for id := range qd.selected {
			if !w.HasComponentType(e, id) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, e)
		}
	}
	return matches
}
