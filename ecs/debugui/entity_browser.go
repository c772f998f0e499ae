package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickworld/ecs"
)

// rebuildInterval is how many frames a cached entity list is reused before
// it is rebuilt even if the entity count did not change.
const rebuildInterval = 30

type EntityInfo struct {
	Entity         ecs.Entity
	ComponentTypes []string
}

type EntityBrowser struct {
	Visible bool

	entities      []EntityInfo
	builtAt       uint64
	builtLiving   int
	sortColumn    int
	sortAscending bool

	selected           ecs.Entity
	hasSelection       bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		Visible:            true,
		sortAscending:      true,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(w *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildIfNeeded(w)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	filtered := eb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sort()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			info := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selected == info.Entity
			if imgui.SelectableBoolV(info.Entity.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(info.Entity)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(info.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(info.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Select marks e as the inspected entity.
func (eb *EntityBrowser) Select(e ecs.Entity) {
	eb.selected = e
	eb.hasSelection = true
}

// Selected returns the selected entity, if any.
func (eb *EntityBrowser) Selected() (ecs.Entity, bool) {
	return eb.selected, eb.hasSelection
}

func (eb *EntityBrowser) rebuildIfNeeded(w *ecs.World) {
	living := w.Stats().LivingEntities
	if eb.entities != nil && living == eb.builtLiving && w.Frame()-eb.builtAt < rebuildInterval {
		return
	}
	eb.rebuild(w)
}

func (eb *EntityBrowser) rebuild(w *ecs.World) {
	eb.entities = eb.entities[:0]
	for e := range w.Entities() {
		types := w.ComponentTypes(e)
		names := make([]string, len(types))
		for i, ct := range types {
			names[i] = ct.Name()
		}
		eb.entities = append(eb.entities, EntityInfo{Entity: e, ComponentTypes: names})
	}
	if eb.entities == nil {
		eb.entities = []EntityInfo{}
	}
	eb.builtAt = w.Frame()
	eb.builtLiving = len(eb.entities)

	if eb.hasSelection && !w.IsLiving(eb.selected) {
		eb.hasSelection = false
	}
	eb.sort()
}

func (eb *EntityBrowser) sort() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		var less bool

		switch eb.sortColumn {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.Entity.Index < b.Entity.Index
		}

		if !eb.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowser) filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, info := range eb.entities {
		componentsStr := strings.ToLower(strings.Join(info.ComponentTypes, " "))
		if !strings.Contains(info.Entity.String(), filterLower) && !strings.Contains(componentsStr, filterLower) {
			continue
		}
		filtered = append(filtered, info)
	}

	return filtered
}
