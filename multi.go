package lattice

import (
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/kmiermans/lattice-hashmap/coord"
)

// Multi is a lattice holding an ordered list of distinct occupants per
// coordinate. A coordinate whose list becomes empty is removed, so
// IsOccupied(c) is equivalent to Count(c) > 0.
//
// The same ID may sit at several coordinates; global uniqueness is up to the
// caller.
type Multi[C coord.Coord] struct {
	sites map[C][]ID
	opts  options
}

// NewMulti creates an empty multi-occupancy index.
func NewMulti[C coord.Coord](optFns ...Option) *Multi[C] {
	o := applyOptions(optFns)
	return &Multi[C]{
		sites: make(map[C][]ID, o.capacity),
		opts:  o,
	}
}

// Checks reports whether precondition checking is enabled.
func (m *Multi[C]) Checks() bool { return m.opts.checks }

// Len returns the number of occupied coordinates.
func (m *Multi[C]) Len() int { return len(m.sites) }

// IsOccupied reports whether c holds at least one occupant.
func (m *Multi[C]) IsOccupied(c C) bool {
	_, ok := m.sites[c]
	return ok
}

// Count returns the number of occupants at c, 0 if c is empty.
func (m *Multi[C]) Count(c C) int {
	return len(m.sites[c])
}

// Lookup returns a copy of the occupants at c in insertion order, or nil if c
// is empty.
func (m *Multi[C]) Lookup(c C) []ID {
	return slices.Clone(m.sites[c])
}

// Bind appends id to the occupants of c.
// With checks enabled id must not already be at c.
func (m *Multi[C]) Bind(id ID, c C) error {
	ids := m.sites[c]
	var err error
	if m.opts.checks && slices.Contains(ids, id) {
		err = occupantErr("bind", id, c, ErrDuplicateOccupant)
	} else {
		m.sites[c] = append(ids, id)
	}
	m.opts.metricsCollector.RecordBind(err)
	m.opts.logger.LogBind(id, c, err)
	return err
}

// Release removes id from c, erasing c once its last occupant is gone.
// With checks enabled c must be occupied and hold id.
func (m *Multi[C]) Release(id ID, c C) error {
	err := m.release(id, c)
	m.opts.metricsCollector.RecordRelease(err)
	m.opts.logger.LogReleaseOccupant(id, c, err)
	return err
}

func (m *Multi[C]) release(id ID, c C) error {
	ids, ok := m.sites[c]
	i := slices.Index(ids, id)
	if m.opts.checks {
		if !ok {
			return occupantErr("release", id, c, ErrNotOccupied)
		}
		if i < 0 {
			return occupantErr("release", id, c, ErrOccupantNotFound)
		}
	}
	if i >= 0 {
		m.store(c, slices.Delete(ids, i, i+1))
	}
	return nil
}

// releaseUnchecked removes the first id at c, if any.
func (m *Multi[C]) releaseUnchecked(id ID, c C) {
	ids := m.sites[c]
	if i := slices.Index(ids, id); i >= 0 {
		m.store(c, slices.Delete(ids, i, i+1))
	}
}

// Update replaces the occupants of c with fn applied to a copy of them.
// An empty result erases c. With checks enabled a result holding the same ID
// twice is rejected and c is left unchanged.
func (m *Multi[C]) Update(c C, fn func(ids []ID) []ID) error {
	next := fn(slices.Clone(m.sites[c]))
	if m.opts.checks && hasDuplicates(next) {
		return coordErr("update", c, ErrDuplicateOccupant)
	}
	m.store(c, slices.Clone(next))
	return nil
}

// Move relocates id from from to to.
func (m *Multi[C]) Move(id ID, from, to C) error {
	return m.MoveBatch([]ID{id}, []C{from}, []C{to}, nil)
}

// MoveBatch releases ids[i] from from[i] for every i, then binds newIDs[i] at
// to[i] for every i, appending to occupied destinations. If newIDs is empty
// the occupants keep their IDs.
//
// With checks enabled the whole batch is applied to a staged copy of the
// touched coordinates first; any violation rejects the batch and leaves the
// index unchanged.
func (m *Multi[C]) MoveBatch(ids []ID, from, to []C, newIDs []ID) (err error) {
	start := time.Now()
	n := len(from)
	defer func() {
		m.opts.metricsCollector.RecordMove(n, time.Since(start), err)
		m.opts.logger.LogMove(n, err)
	}()

	if len(newIDs) == 0 {
		newIDs = ids
	}

	if m.opts.checks {
		var staged map[C][]ID
		if staged, err = m.stageMove(ids, from, to, newIDs); err != nil {
			return err
		}
		for c, s := range staged {
			m.store(c, s)
		}
		return nil
	}

	n = min(len(ids), len(from), len(to), len(newIDs))
	for i := range n {
		m.releaseUnchecked(ids[i], from[i])
	}
	for i := range n {
		m.sites[to[i]] = append(m.sites[to[i]], newIDs[i])
	}
	return nil
}

func (m *Multi[C]) stageMove(ids []ID, from, to []C, newIDs []ID) (map[C][]ID, error) {
	if err := checkLen("ids", len(from), len(ids)); err != nil {
		return nil, err
	}
	if err := checkLen("to", len(from), len(to)); err != nil {
		return nil, err
	}
	if err := checkLen("newIDs", len(from), len(newIDs)); err != nil {
		return nil, err
	}
	for _, c := range from {
		if !m.IsOccupied(c) {
			return nil, coordErr("move", c, ErrNotOccupied)
		}
	}

	staged := make(map[C][]ID, len(from)+len(to))
	view := func(c C) []ID {
		if s, ok := staged[c]; ok {
			return s
		}
		s := slices.Clone(m.sites[c])
		staged[c] = s
		return s
	}

	for i, c := range from {
		cur := view(c)
		if len(cur) == 0 {
			return nil, occupantErr("move", ids[i], c, ErrNotOccupied)
		}
		j := slices.Index(cur, ids[i])
		if j < 0 {
			return nil, occupantErr("move", ids[i], c, ErrOccupantNotFound)
		}
		staged[c] = slices.Delete(cur, j, j+1)
	}
	for i, c := range to {
		cur := view(c)
		if slices.Contains(cur, newIDs[i]) {
			return nil, occupantErr("move", newIDs[i], c, ErrDuplicateOccupant)
		}
		staged[c] = append(cur, newIDs[i])
	}
	return staged, nil
}

// store sets the occupants of c, erasing c if ids is empty.
func (m *Multi[C]) store(c C, ids []ID) {
	if len(ids) == 0 {
		delete(m.sites, c)
		return
	}
	m.sites[c] = ids
}

// All returns an iterator over occupied coordinates and their occupants, in
// no particular coordinate order. The yielded slices belong to the index:
// they must not be modified or retained, and the index must not be mutated
// during iteration.
func (m *Multi[C]) All() iter.Seq2[C, []ID] {
	return maps.All(m.sites)
}

// Occupants returns the set of IDs currently on the lattice.
// IDs are stored as their uint64 two's complement.
func (m *Multi[C]) Occupants() *roaring64.Bitmap {
	return occupantBitmap(func(yield func(ID) bool) {
		for _, ids := range m.sites {
			for _, id := range ids {
				if !yield(id) {
					return
				}
			}
		}
	})
}

// Reset removes all occupants.
func (m *Multi[C]) Reset() {
	clear(m.sites)
}

func hasDuplicates(ids []ID) bool {
	if len(ids) < 2 {
		return false
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}
