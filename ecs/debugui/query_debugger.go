package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

type QueryDebuggerCache struct {
	componentTypes []string
	lastPoolCount  int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastPoolCount: -1,
		},
	}
}

// QueryPlan describes how a join over the selected pools would run.
type QueryPlan struct {
	Pools     []ecs.PoolStats
	Pivot     string
	PivotSize int
	Matches   int
}

func (qd *QueryDebuggerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.refresh(w)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		selected := qd.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			if selected {
				qd.selectedComponentTypes[compType] = true
			} else {
				delete(qd.selectedComponentTypes, compType)
			}
		}
	}

	imgui.Separator()

	plan, ok := planQuery(w, qd.selectedComponentTypes)
	if !ok {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Pivot: %s (%d entities)", plan.Pivot, plan.PivotSize))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", plan.Matches))

	if imgui.TreeNodeStr("Pool Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryPoolTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, p := range plan.Pools {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(p.ComponentType)

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%d", p.Count))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerComponent) refresh(w *ecs.World) {
	if qd.cache.lastPoolCount == len(w.Pools()) {
		return
	}
	qd.cache.lastPoolCount = len(w.Pools())

	qd.cache.componentTypes = make([]string, 0, len(w.Pools()))
	for _, pool := range w.Pools() {
		qd.cache.componentTypes = append(qd.cache.componentTypes, pool.ComponentType().String())
	}
	sort.Strings(qd.cache.componentTypes)
}

// planQuery joins the pools whose type names are selected. It reports false
// when none of the selected names matches a pool.
func planQuery(w *ecs.World, selected map[string]bool) (QueryPlan, bool) {
	var plan QueryPlan
	var sets []*ecs.SparseSet
	var pools []ecs.AnyPool

	for _, pool := range w.Pools() {
		name := pool.ComponentType().String()
		if !selected[name] {
			continue
		}
		pools = append(pools, pool)
		sets = append(sets, pool.Set())
		plan.Pools = append(plan.Pools, ecs.PoolStats{
			ComponentType: name,
			Count:         pool.Len(),
			Capacity:      pool.Cap(),
			PageSize:      pool.Set().PageSize(),
			PageCount:     pool.Set().PageCount(),
		})
	}

	if len(sets) == 0 {
		return plan, false
	}

	cursor := ecs.NewCursor(sets...)
	pivot := cursor.Pivot()
	for i, set := range sets {
		if set == pivot {
			plan.Pivot = pools[i].ComponentType().String()
			plan.PivotSize = set.Len()
			break
		}
	}

	for cursor.Next() {
		plan.Matches++
	}

	return plan, true
}
