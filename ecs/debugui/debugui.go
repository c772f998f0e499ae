// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It renders ImguiItem components each frame and offers an Inspector system with
// windows for browsing entities, editing components and watching frame statistics.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickworld/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiSystem renders every ImguiItem and records whether ImGui is capturing input.
// Register it with a high priority so it runs after gameplay systems.
type ImguiSystem struct {
	ecs.Order
	Items ecs.View[ImguiItem]

	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Process updates the input capture state and calls every render function.
func (i *ImguiSystem) Process(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	i.WantCaptureMouse = io.WantCaptureMouse()
	i.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range i.Items.All() {
		if item.Render != nil {
			item.Render()
		}
	}
}
