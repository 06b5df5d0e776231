package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flockflow/ecs"
)

const (
	archetypeColumnID = iota
	archetypeColumnComponents
	archetypeColumnEntities
)

// sortArchetypes orders stats by the given table column.
func sortArchetypes(stats []ecs.ArchetypeStats, column int, ascending bool) {
	slices.SortStableFunc(stats, func(a, b ecs.ArchetypeStats) int {
		var c int
		switch column {
		case archetypeColumnID:
			c = cmp.Compare(a.ID, b.ID)
		case archetypeColumnComponents:
			c = cmp.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		default:
			c = cmp.Compare(a.EntityCount, b.EntityCount)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// ArchetypeViewer lists archetypes with their population. Clicking a row selects it.
type ArchetypeViewer struct {
	sortColumn    int
	sortAscending bool
	selected      *uint32
}

func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{sortColumn: archetypeColumnEntities}
}

// Render draws the window and returns the archetype clicked this frame, if any.
func (av *ArchetypeViewer) Render(storage *ecs.Storage) (uint32, bool) {
	imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 240), imgui.CondOnce)
	if !imgui.BeginV("Archetypes", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return 0, false
	}
	defer imgui.End()

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("%d entities in %d archetypes, %d singletons",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	largest := 0
	for _, a := range stats.ArchetypeBreakdown {
		largest = max(largest, a.EntityCount)
	}

	var clicked uint32
	var ok bool

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			specs.SetSpecsDirty(false)
		}
		sortArchetypes(stats.ArchetypeBreakdown, av.sortColumn, av.sortAscending)

		for _, a := range stats.ArchetypeBreakdown {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			selected := av.selected != nil && *av.selected == a.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", a.ID), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := a.ID
				av.selected = &id
				clicked, ok = id, true
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(a.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", a.EntityCount))
			if largest > 0 {
				width := float32(a.EntityCount) / float32(largest) * 80
				imgui.SameLine()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+width, pos.Y+10), color)
			}
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	return clicked, ok
}
