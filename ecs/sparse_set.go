package ecs

import (
	"math/bits"

	"github.com/rotisserie/eris"
)

// DefaultPageSize is the sparse page size used when no sizing hint is given.
const DefaultPageSize = 1024

// SparseSet maps entity ids to positions in a dense array.
//
// The sparse side is split into pages of PageSize slots that are allocated the
// first time an id falling into them is added. Every slot of a fresh page holds
// Invalid. For an entity e present in the set:
//
//	pages[e >> shift][e & mask] == d  and  dense[d] == e
//
// Removal moves the last dense entry into the freed position, so dense order
// is not stable across removals.
type SparseSet struct {
	dense    []Entity
	pages    [][]int32
	pageSize int
	shift    uint
	mask     int
}

// NewSparseSet creates an empty set whose sparse pages hold pageSize slots.
// pageSize must be a positive power of two.
func NewSparseSet(pageSize int) (*SparseSet, error) {
	if !isPowerOfTwo(pageSize) {
		return nil, eris.Wrapf(ErrInvalidPageSize, "page size %d", pageSize)
	}
	return newSparseSet(pageSize), nil
}

func newSparseSet(pageSize int) *SparseSet {
	return &SparseSet{
		dense:    make([]Entity, 0, pageSize),
		pageSize: pageSize,
		shift:    uint(bits.TrailingZeros(uint(pageSize))),
		mask:     pageSize - 1,
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Add appends e to the dense array. It fails if e is negative or already present.
func (s *SparseSet) Add(e Entity) error {
	if e < 0 {
		return eris.Wrapf(ErrNegativeEntity, "add entity %d", e)
	}
	if s.Contains(e) {
		return eris.Wrapf(ErrDuplicateEntity, "add entity %d", e)
	}

	page := s.ensurePage(int(e) >> s.shift)
	page[int(e)&s.mask] = int32(len(s.dense))
	s.dense = append(s.dense, e)
	return nil
}

// Remove deletes e by swapping the last dense entry into its slot.
// Absent and negative ids are ignored.
func (s *SparseSet) Remove(e Entity) {
	d, ok := s.TryIndex(e)
	if !ok {
		return
	}

	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[d] = moved
	s.setSlot(moved, int32(d))
	s.setSlot(e, int32(Invalid))
	s.dense = s.dense[:last]
}

// Contains reports whether e is in the set.
func (s *SparseSet) Contains(e Entity) bool {
	_, ok := s.TryIndex(e)
	return ok
}

// IndexOf returns the dense index of e, or int(Invalid) if e is absent.
func (s *SparseSet) IndexOf(e Entity) int {
	d, ok := s.TryIndex(e)
	if !ok {
		return int(Invalid)
	}
	return d
}

// TryIndex returns the dense index of e and whether e is present.
func (s *SparseSet) TryIndex(e Entity) (int, bool) {
	if e < 0 {
		return int(Invalid), false
	}
	p := int(e) >> s.shift
	if p >= len(s.pages) || s.pages[p] == nil {
		return int(Invalid), false
	}
	d := s.pages[p][int(e)&s.mask]
	if d == int32(Invalid) {
		return int(Invalid), false
	}
	return int(d), true
}

// Clear empties the set. Allocated pages are kept and reset to Invalid.
func (s *SparseSet) Clear() {
	for _, page := range s.pages {
		if page == nil {
			continue
		}
		fillInvalid(page)
	}
	s.dense = s.dense[:0]
}

// Len returns the number of entities in the set.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// Dense returns the entities in dense order. The slice is owned by the set and
// must not be modified; it is invalidated by the next Add, Remove or Clear.
func (s *SparseSet) Dense() []Entity {
	return s.dense
}

// PageSize returns the number of slots per sparse page.
func (s *SparseSet) PageSize() int {
	return s.pageSize
}

// PageCount returns the number of sparse pages allocated so far.
func (s *SparseSet) PageCount() int {
	n := 0
	for _, page := range s.pages {
		if page != nil {
			n++
		}
	}
	return n
}

func (s *SparseSet) ensurePage(p int) []int32 {
	for len(s.pages) <= p {
		s.pages = append(s.pages, nil)
	}
	if s.pages[p] == nil {
		page := make([]int32, s.pageSize)
		fillInvalid(page)
		s.pages[p] = page
	}
	return s.pages[p]
}

func (s *SparseSet) setSlot(e Entity, d int32) {
	s.pages[int(e)>>s.shift][int(e)&s.mask] = d
}

func fillInvalid(page []int32) {
	for i := range page {
		page[i] = int32(Invalid)
	}
}
