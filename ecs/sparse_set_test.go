package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/sparsecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSet(t *testing.T, pageSize int) *ecs.SparseSet {
	t.Helper()
	s, err := ecs.NewSparseSet(pageSize)
	require.NoError(t, err)
	return s
}

func TestNewSparseSetPageSize(t *testing.T) {
	for _, size := range []int{1, 2, 16, 1024, 1 << 16} {
		t.Run(fmt.Sprintf("valid=%d", size), func(t *testing.T) {
			s, err := ecs.NewSparseSet(size)
			require.NoError(t, err)
			assert.Equal(t, size, s.PageSize())
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, 0, s.PageCount())
		})
	}

	for _, size := range []int{0, -1, -64, 3, 100, 1023} {
		t.Run(fmt.Sprintf("invalid=%d", size), func(t *testing.T) {
			s, err := ecs.NewSparseSet(size)
			assert.ErrorIs(t, err, ecs.ErrInvalidPageSize)
			assert.Nil(t, s)
		})
	}
}

func TestSparseSetAddContains(t *testing.T) {
	s := newSet(t, 16)
	ids := []ecs.Entity{0, 5, 15, 16, 17, 300, 4096, 7}

	for _, id := range ids {
		require.NoError(t, s.Add(id))
	}

	assert.Equal(t, len(ids), s.Len())
	for i, id := range ids {
		assert.True(t, s.Contains(id), "entity %d", id)
		assert.Equal(t, i, s.IndexOf(id))
	}

	assert.False(t, s.Contains(1))
	assert.False(t, s.Contains(99999))
	assert.Equal(t, ids, s.Dense())
}

func TestSparseSetAllocatesPagesLazily(t *testing.T) {
	s := newSet(t, 16)

	require.NoError(t, s.Add(3))
	assert.Equal(t, 1, s.PageCount())

	require.NoError(t, s.Add(15))
	assert.Equal(t, 1, s.PageCount())

	require.NoError(t, s.Add(16*10+1))
	assert.Equal(t, 2, s.PageCount())

	// Lookups on pages that were never allocated.
	assert.False(t, s.Contains(16*5))
	assert.False(t, s.Contains(16*100))
}

func TestSparseSetAddRejectsDuplicate(t *testing.T) {
	s := newSet(t, 16)
	require.NoError(t, s.Add(4))

	err := s.Add(4)
	assert.ErrorIs(t, err, ecs.ErrDuplicateEntity)
	assert.Equal(t, 1, s.Len())
}

func TestSparseSetNegativeIds(t *testing.T) {
	s := newSet(t, 16)
	require.NoError(t, s.Add(0))

	assert.ErrorIs(t, s.Add(-1), ecs.ErrNegativeEntity)
	assert.ErrorIs(t, s.Add(ecs.Invalid), ecs.ErrNegativeEntity)
	assert.False(t, s.Contains(-5))
	assert.Equal(t, int(ecs.Invalid), s.IndexOf(-5))

	d, ok := s.TryIndex(-5)
	assert.False(t, ok)
	assert.Equal(t, int(ecs.Invalid), d)

	s.Remove(-5)
	assert.Equal(t, 1, s.Len())
}

func TestSparseSetRemoveSwapsLast(t *testing.T) {
	s := newSet(t, 16)
	a, b, c := ecs.Entity(10), ecs.Entity(20), ecs.Entity(30)
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))
	require.NoError(t, s.Add(c))

	vacated := s.IndexOf(b)
	s.Remove(b)

	assert.False(t, s.Contains(b))
	assert.True(t, s.Contains(a))
	assert.True(t, s.Contains(c))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, vacated, s.IndexOf(c))
	assert.Equal(t, []ecs.Entity{a, c}, s.Dense())
}

func TestSparseSetRemoveEdgeCases(t *testing.T) {
	t.Run("absent id is a no-op", func(t *testing.T) {
		s := newSet(t, 16)
		require.NoError(t, s.Add(1))
		s.Remove(2)
		s.Remove(1 << 20)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("last element", func(t *testing.T) {
		s := newSet(t, 16)
		require.NoError(t, s.Add(1))
		require.NoError(t, s.Add(2))
		s.Remove(2)
		assert.Equal(t, []ecs.Entity{1}, s.Dense())
		assert.False(t, s.Contains(2))
		assert.Equal(t, 0, s.IndexOf(1))
	})

	t.Run("only element", func(t *testing.T) {
		s := newSet(t, 16)
		require.NoError(t, s.Add(9))
		s.Remove(9)
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Contains(9))
	})

	t.Run("re-add after remove", func(t *testing.T) {
		s := newSet(t, 16)
		require.NoError(t, s.Add(9))
		s.Remove(9)
		require.NoError(t, s.Add(9))
		assert.True(t, s.Contains(9))
		assert.Equal(t, 0, s.IndexOf(9))
	})
}

func TestSparseSetInvariantUnderChurn(t *testing.T) {
	s := newSet(t, 8)
	present := make(map[ecs.Entity]bool)

	for i := 0; i < 500; i++ {
		e := ecs.Entity((i * 37) % 211)
		if present[e] {
			s.Remove(e)
			delete(present, e)
		} else {
			require.NoError(t, s.Add(e))
			present[e] = true
		}

		require.Equal(t, len(present), s.Len())
	}

	for d, e := range s.Dense() {
		assert.Equal(t, d, s.IndexOf(e))
		assert.True(t, present[e])
	}
	for e := range present {
		assert.True(t, s.Contains(e))
	}
}

func TestSparseSetClear(t *testing.T) {
	s := newSet(t, 16)
	ids := []ecs.Entity{1, 2, 40, 1000}
	for _, id := range ids {
		require.NoError(t, s.Add(id))
	}
	pages := s.PageCount()

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, pages, s.PageCount())
	for _, id := range ids {
		assert.False(t, s.Contains(id))
	}

	s.Clear()
	assert.Equal(t, 0, s.Len())

	for _, id := range ids {
		require.NoError(t, s.Add(id))
	}
	assert.Equal(t, len(ids), s.Len())
}
