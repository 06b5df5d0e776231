package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flockflow/ecs"
)

type entityRow struct {
	ID         ecs.EntityId
	Archetype  uint32
	Components []string
}

// collectRows lists every live entity in archetype order.
func collectRows(storage *ecs.Storage) []entityRow {
	rows := make([]entityRow, 0, storage.Len())
	for _, archetype := range storage.GetArchetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			rows = append(rows, entityRow{ID: id, Archetype: archetype.ID(), Components: names})
		}
	}
	return rows
}

// filterRows keeps rows whose id or component names contain text, case-insensitively, and
// that live in archetype when one is given.
func filterRows(rows []entityRow, text string, archetype *uint32) []entityRow {
	if text == "" && archetype == nil {
		return rows
	}
	needle := strings.ToLower(text)

	out := make([]entityRow, 0, len(rows))
	for _, row := range rows {
		if archetype != nil && row.Archetype != *archetype {
			continue
		}
		if needle != "" &&
			!strings.Contains(row.ID.String(), needle) &&
			!strings.Contains(strings.ToLower(strings.Join(row.Components, " ")), needle) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// EntityInspector lists entities page by page and edits the components of the selected one
// in place.
type EntityInspector struct {
	pageSize  int
	page      int
	filter    string
	archetype *uint32
	selected  *ecs.EntityRef
}

func NewEntityInspector(pageSize int) *EntityInspector {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &EntityInspector{pageSize: pageSize}
}

// FilterArchetype restricts the list to one archetype.
func (ei *EntityInspector) FilterArchetype(id uint32) {
	ei.archetype = &id
	ei.page = 0
}

// Select picks the entity whose components are shown. The selection follows the entity when
// it changes archetype.
func (ei *EntityInspector) Select(storage *ecs.Storage, id ecs.EntityId) {
	ei.selected = storage.CreateEntityRef(id)
}

// Selected returns the current id of the selected entity, or false when nothing is selected or
// the entity was deleted.
func (ei *EntityInspector) Selected(storage *ecs.Storage) (ecs.EntityId, bool) {
	return storage.ResolveEntityRef(ei.selected)
}

func (ei *EntityInspector) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.InputTextWithHint("##filter", "Filter...", &ei.filter, imgui.InputTextFlagsNone, nil) {
		ei.page = 0
	}
	imgui.SameLine()
	if imgui.Button("Clear") {
		ei.filter = ""
		ei.archetype = nil
		ei.page = 0
	}
	if ei.archetype != nil {
		imgui.Text(fmt.Sprintf("Archetype 0x%X only", *ei.archetype))
	}

	current, picked := ei.Selected(storage)
	rows := filterRows(collectRows(storage), ei.filter, ei.archetype)
	pages := max(1, (len(rows)+ei.pageSize-1)/ei.pageSize)
	ei.page = min(ei.page, pages-1)
	start := ei.page * ei.pageSize
	end := min(start+ei.pageSize, len(rows))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 2, tableFlags, imgui.NewVec2(0, 160), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, row := range rows[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			selected := picked && current == row.ID
			if imgui.SelectableBoolV(row.ID.String(), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ei.Select(storage, row.ID)
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", ei.page+1, pages, len(rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && ei.page > 0 {
		ei.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && ei.page < pages-1 {
		ei.page++
	}

	imgui.Separator()
	ei.renderSelected(storage)
	imgui.End()
}

func (ei *EntityInspector) renderSelected(storage *ecs.Storage) {
	if ei.selected == nil {
		imgui.Text("No entity selected")
		return
	}
	id, ok := ei.Selected(storage)
	if !ok {
		imgui.Text("Selected entity no longer exists")
		return
	}

	archetype := storage.GetArchetypeById(id.ArchetypeId())
	imgui.Text(fmt.Sprintf("Entity %s", id))
	for _, t := range archetype.Types() {
		component := storage.GetComponent(id, t)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			EditStruct(t.String(), component)
			imgui.TreePop()
		}
	}
}
