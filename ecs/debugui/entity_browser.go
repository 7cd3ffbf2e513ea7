package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

type EntityInfo struct {
	ID             ecs.Entity
	ComponentTypes []string
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		selectedEntity:     ecs.Invalid,
		maxEntitiesPerPage: max(1, maxEntitiesPerPage),
	}
}

func (eb *EntityBrowserComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(w)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterType = nil
		eb.currentPage = 0
	}
	if eb.filterType != nil {
		imgui.Text(fmt.Sprintf("Pool: %s", *eb.filterType))
	}

	filteredEntities := eb.filteredEntities()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
			filteredEntities = eb.filteredEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx, endIdx := pageBounds(len(filteredEntities), eb.currentPage, eb.maxEntitiesPerPage)
		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntity == entity.ID
			if imgui.SelectableBoolV(entity.ID.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntity = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// refresh rebuilds the entity list on every frame.
func (eb *EntityBrowserComponent) refresh(w *ecs.World) {
	eb.cache.entities = collectEntities(w)
	sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
}

// collectEntities lists every entity that has at least one component, with
// the names of its component types in pool creation order.
func collectEntities(w *ecs.World) []EntityInfo {
	index := make(map[ecs.Entity]int)
	entities := make([]EntityInfo, 0, 1024)

	for _, pool := range w.Pools() {
		name := pool.ComponentType().String()
		for _, e := range pool.Set().Dense() {
			i, ok := index[e]
			if !ok {
				i = len(entities)
				index[e] = i
				entities = append(entities, EntityInfo{ID: e})
			}
			entities[i].ComponentTypes = append(entities[i].ComponentTypes, name)
		}
	}

	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 1:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			return len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			return a.ID < b.ID
		}
	})
}

func (eb *EntityBrowserComponent) filteredEntities() []EntityInfo {
	return filterEntities(eb.cache.entities, eb.filterText, eb.filterType)
}

// filterEntities keeps entities whose id or component names contain text,
// and that carry componentType when it is set.
func filterEntities(entities []EntityInfo, text string, componentType *string) []EntityInfo {
	if text == "" && componentType == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if componentType != nil && !slices.Contains(entity.ComponentTypes, *componentType) {
			continue
		}

		if text != "" {
			idStr := strconv.Itoa(int(entity.ID))
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func pageBounds(total, page, perPage int) (int, int) {
	start := min(page*perPage, total)
	end := min(start+perPage, total)
	return start, end
}

// SetTypeFilter restricts the browser to entities that have componentType.
func (eb *EntityBrowserComponent) SetTypeFilter(componentType string) {
	eb.filterType = &componentType
	eb.currentPage = 0
}

// SelectedEntity returns the entity picked in the table, or ecs.Invalid.
func (eb *EntityBrowserComponent) SelectedEntity() ecs.Entity {
	return eb.selectedEntity
}
