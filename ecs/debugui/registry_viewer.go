package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickworld/ecs"
)

type ComponentTypeInfo struct {
	Type        ecs.ComponentType
	EntityCount int
}

// RegistryViewer lists component types with their storage and population,
// and the registered managers and systems in execution order.
type RegistryViewer struct {
	Visible bool

	types         []ComponentTypeInfo
	sortColumn    int
	sortAscending bool
}

func NewRegistryViewer() *RegistryViewer {
	return &RegistryViewer{
		Visible:    true,
		sortColumn: 3,
	}
}

func (rv *RegistryViewer) Render(w *ecs.World) {
	if !imgui.BeginV("Registry Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rv.collect(w)

	maxEntityCount := 0
	for _, info := range rv.types {
		maxEntityCount = max(maxEntityCount, info.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.TreeNodeStr(fmt.Sprintf("Component Types (%d)", len(rv.types))) {
		if imgui.BeginTableV("ComponentTypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Id")
			imgui.TableSetupColumn("Type")
			imgui.TableSetupColumn("Storage")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			sortSpecs := imgui.TableGetSortSpecs()
			if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
				spec := sortSpecs.Specs()
				rv.sortColumn = int(spec.ColumnIndex())
				rv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
				sortSpecs.SetSpecsDirty(false)
			}
			rv.sort()

			for _, info := range rv.types {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", info.Type.Id))
				imgui.TableNextColumn()
				imgui.Text(info.Type.Name())
				imgui.TableNextColumn()
				imgui.Text(info.Type.Storage.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", info.EntityCount))

				if maxEntityCount > 0 {
					barWidth := float32(info.EntityCount) / float32(maxEntityCount) * 80.0
					imgui.SameLine()
					drawList := imgui.WindowDrawList()
					pos := imgui.CursorScreenPos()
					color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
					drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
				}
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	stats := w.Stats()
	if imgui.TreeNodeStr(fmt.Sprintf("Managers (%d)", len(stats.Managers))) {
		for _, m := range stats.Managers {
			imgui.BulletText(fmt.Sprintf("[%d] %s", m.Priority, m.Name))
		}
		imgui.TreePop()
	}
	if imgui.TreeNodeStr(fmt.Sprintf("Systems (%d)", len(stats.Systems))) {
		for _, s := range stats.Systems {
			state := ""
			if !s.Enabled {
				state = " (disabled)"
			}
			imgui.BulletText(fmt.Sprintf("[%d] %s%s", s.Priority, s.Name, state))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (rv *RegistryViewer) collect(w *ecs.World) {
	rv.types = rv.types[:0]
	for ct := range w.Registry().Types() {
		rv.types = append(rv.types, ComponentTypeInfo{
			Type:        ct,
			EntityCount: w.ComponentCount(ct.Id),
		})
	}
}

func (rv *RegistryViewer) sort() {
	sort.SliceStable(rv.types, func(i, j int) bool {
		a, b := rv.types[i], rv.types[j]
		var less bool

		switch rv.sortColumn {
		case 0:
			less = a.Type.Id < b.Type.Id
		case 1:
			less = a.Type.Name() < b.Type.Name()
		case 2:
			less = a.Type.Storage < b.Type.Storage
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !rv.sortAscending {
			return !less
		}
		return less
	})
}
