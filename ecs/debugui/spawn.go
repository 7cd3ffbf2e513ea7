package debugui

import (
	"github.com/plus3/sparsecs/ecs"
	"go.uber.org/multierr"
)

// SpawnDebugUI creates one entity per debug window. Register a DebugUISystem
// to draw them.
func SpawnDebugUI(w *ecs.World) error {
	return multierr.Combine(
		ecs.AddComponent(w, w.Create(), NewEntityBrowserComponent(100)),
		ecs.AddComponent(w, w.Create(), NewComponentInspectorComponent()),
		ecs.AddComponent(w, w.Create(), NewPoolViewerComponent()),
		ecs.AddComponent(w, w.Create(), NewPerformanceStatsComponent(120)),
		ecs.AddComponent(w, w.Create(), NewQueryDebuggerComponent()),
	)
}

// DebugUISystem draws the windows spawned by SpawnDebugUI. Drawing is deferred
// to the end of the frame so the windows show the World after every system
// and command has run.
type DebugUISystem struct {
	Browsers   ecs.Query[EntityBrowserComponent]
	Inspectors ecs.Query[ComponentInspectorComponent]
	Pools      ecs.Query[PoolViewerComponent]
	Stats      ecs.Query[PerformanceStatsComponent]
	Queries    ecs.Query[QueryDebuggerComponent]
}

func (s *DebugUISystem) Execute(frame *ecs.UpdateFrame) {
	w := frame.World
	dt := float32(frame.DeltaTime)
	frame.Commands.Defer(func() {
		s.render(w, dt)
	})
}

func (s *DebugUISystem) render(w *ecs.World, dt float32) {
	var poolFilter *string
	s.Pools.Each(func(_ ecs.Entity, pv *PoolViewerComponent) {
		if clicked := pv.Render(w); clicked != nil {
			poolFilter = clicked
		}
	})

	selected := ecs.Invalid
	s.Browsers.Each(func(_ ecs.Entity, eb *EntityBrowserComponent) {
		if poolFilter != nil {
			eb.SetTypeFilter(*poolFilter)
		}
		eb.Render(w)
		if e := eb.SelectedEntity(); e.Valid() {
			selected = e
		}
	})

	s.Inspectors.Each(func(_ ecs.Entity, ci *ComponentInspectorComponent) {
		ci.Render(w, selected)
	})
	s.Stats.Each(func(_ ecs.Entity, ps *PerformanceStatsComponent) {
		ps.Render(w, dt)
	})
	s.Queries.Each(func(_ ecs.Entity, qd *QueryDebuggerComponent) {
		qd.Render(w)
	})
}
