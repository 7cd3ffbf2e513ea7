package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

type PoolViewerCache struct {
	pools         []ecs.PoolStats
	sortColumn    int
	sortAscending bool
}

func NewPoolViewerComponent() PoolViewerComponent {
	return PoolViewerComponent{
		cache: &PoolViewerCache{
			sortColumn:    1,
			sortAscending: false,
		},
	}
}

// Render draws one row per component pool. It returns the component type
// clicked this frame, or nil.
func (pv *PoolViewerComponent) Render(w *ecs.World) *string {
	if !imgui.BeginV("Pool Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	pv.refresh(w)

	maxCount := 0
	for _, p := range pv.cache.pools {
		maxCount = max(maxCount, p.Count)
	}

	var clicked *string

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("PoolTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("Capacity")
		imgui.TableSetupColumn("Pages")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			pv.cache.sortColumn = int(spec.ColumnIndex())
			pv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortPools(pv.cache.pools, pv.cache.sortColumn, pv.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, p := range pv.cache.pools {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := pv.selectedType != nil && *pv.selectedType == p.ComponentType
			if imgui.SelectableBoolV(p.ComponentType, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				name := p.ComponentType
				pv.selectedType = &name
				clicked = &name
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p.Count))

			if maxCount > 0 {
				barWidth := float32(p.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p.Capacity))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d x %d", p.PageCount, p.PageSize))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// refresh reloads pool stats on every frame.
func (pv *PoolViewerComponent) refresh(w *ecs.World) {
	pv.cache.pools = w.CollectStats().PoolBreakdown
	sortPools(pv.cache.pools, pv.cache.sortColumn, pv.cache.sortAscending)
}

func sortPools(pools []ecs.PoolStats, column int, ascending bool) {
	sort.SliceStable(pools, func(i, j int) bool {
		a, b := pools[i], pools[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 0:
			return a.ComponentType < b.ComponentType
		case 2:
			return a.Capacity < b.Capacity
		case 3:
			return a.PageCount < b.PageCount
		default:
			return a.Count < b.Count
		}
	})
}
