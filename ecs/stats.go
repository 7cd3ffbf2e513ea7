package ecs

// WorldStats is a point-in-time summary of a World's storage.
type WorldStats struct {
	PoolCount      int
	CreatedCount   int64
	ComponentCount int
	SingletonCount int
	PoolBreakdown  []PoolStats
	SingletonTypes []string
}

// PoolStats describes one component pool.
type PoolStats struct {
	ComponentType string
	Count         int
	Capacity      int
	PageSize      int
	PageCount     int
}

// CollectStats walks every pool. It allocates and is meant for tooling, not
// for per-frame use.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		PoolCount:      len(w.poolOrder),
		CreatedCount:   w.CreatedCount(),
		SingletonCount: len(w.singletonTypes),
		PoolBreakdown:  make([]PoolStats, 0, len(w.poolOrder)),
		SingletonTypes: make([]string, 0, len(w.singletonTypes)),
	}

	for _, p := range w.poolOrder {
		set := p.Set()
		stats.ComponentCount += p.Len()
		stats.PoolBreakdown = append(stats.PoolBreakdown, PoolStats{
			ComponentType: p.ComponentType().String(),
			Count:         p.Len(),
			Capacity:      p.Cap(),
			PageSize:      set.PageSize(),
			PageCount:     set.PageCount(),
		})
	}

	for _, t := range w.singletonTypes {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}

	return stats
}
