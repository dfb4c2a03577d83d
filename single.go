package lattice

import (
	"iter"
	"maps"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/kmiermans/lattice-hashmap/coord"
)

// Single is a lattice holding at most one occupant per coordinate.
//
// The zero value is not usable; create instances with NewSingle.
type Single[C coord.Coord] struct {
	sites map[C]ID
	opts  options
}

// NewSingle creates an empty single-occupancy index.
func NewSingle[C coord.Coord](optFns ...Option) *Single[C] {
	o := applyOptions(optFns)
	return &Single[C]{
		sites: make(map[C]ID, o.capacity),
		opts:  o,
	}
}

// Checks reports whether precondition checking is enabled.
func (s *Single[C]) Checks() bool { return s.opts.checks }

// Len returns the number of occupied coordinates.
func (s *Single[C]) Len() int { return len(s.sites) }

// IsOccupied reports whether c holds an occupant.
func (s *Single[C]) IsOccupied(c C) bool {
	_, ok := s.sites[c]
	return ok
}

// Lookup returns the occupant at c. It never creates an entry.
func (s *Single[C]) Lookup(c C) (ID, bool) {
	id, ok := s.sites[c]
	return id, ok
}

// GetOrCreate returns the occupant at c, occupying c with the zero ID first
// if it is empty. A creation is recorded as a bind.
func (s *Single[C]) GetOrCreate(c C) ID {
	id, ok := s.sites[c]
	if !ok {
		s.sites[c] = 0
		s.opts.metricsCollector.RecordBind(nil)
		s.opts.logger.LogBind(0, c, nil)
	}
	return id
}

// Set stores id at c, replacing any current occupant.
func (s *Single[C]) Set(c C, id ID) {
	s.sites[c] = id
	s.opts.metricsCollector.RecordBind(nil)
	s.opts.logger.LogBind(id, c, nil)
}

// Release empties c. With checks enabled c must be occupied.
func (s *Single[C]) Release(c C) error {
	var err error
	if s.opts.checks && !s.IsOccupied(c) {
		err = coordErr("release", c, ErrNotOccupied)
	} else {
		delete(s.sites, c)
	}
	s.opts.metricsCollector.RecordRelease(err)
	s.opts.logger.LogRelease(c, err)
	return err
}

// Move relocates the occupant at from to to, keeping its ID.
func (s *Single[C]) Move(from, to C) error {
	return s.MoveBatch([]C{from}, []C{to}, nil)
}

// MoveBatch relocates the occupant at from[i] to to[i] for every i.
//
// If values is empty each occupant keeps its ID; otherwise to[i] receives
// values[i]. Every value is captured and every source released before any
// destination is written, so destinations may coincide with sources of the
// same batch. Destinations are overwritten: a destination already held by an
// occupant that stays put takes the moved value, and a destination listed
// twice keeps the later entry.
//
// With checks enabled the batch is rejected, before any mutation, when the
// slice lengths differ or a source is empty or listed twice.
func (s *Single[C]) MoveBatch(from, to []C, values []ID) (err error) {
	start := time.Now()
	n := len(from)
	defer func() {
		s.opts.metricsCollector.RecordMove(n, time.Since(start), err)
		s.opts.logger.LogMove(n, err)
	}()

	if s.opts.checks {
		if err = s.validateMove(from, to, values); err != nil {
			return err
		}
	} else {
		n = min(n, len(to))
		if len(values) > 0 {
			n = min(n, len(values))
		}
	}

	carried := values
	if len(carried) == 0 {
		carried = make([]ID, n)
		for i, c := range from[:n] {
			carried[i] = s.sites[c]
		}
	}

	for _, c := range from[:n] {
		delete(s.sites, c)
	}
	for i, c := range to[:n] {
		s.sites[c] = carried[i]
	}
	return nil
}

func (s *Single[C]) validateMove(from, to []C, values []ID) error {
	if err := checkLen("to", len(from), len(to)); err != nil {
		return err
	}
	if len(values) > 0 {
		if err := checkLen("values", len(from), len(values)); err != nil {
			return err
		}
	}

	leaving := make(map[C]struct{}, len(from))
	for _, c := range from {
		if _, ok := s.sites[c]; !ok {
			return coordErr("move", c, ErrNotOccupied)
		}
		// The second release of a repeated source would find it vacated.
		if _, dup := leaving[c]; dup {
			return coordErr("move", c, ErrNotOccupied)
		}
		leaving[c] = struct{}{}
	}
	return nil
}

// All returns an iterator over occupied coordinates and their occupants,
// in no particular order. The index must not be mutated during iteration.
func (s *Single[C]) All() iter.Seq2[C, ID] {
	return maps.All(s.sites)
}

// Occupants returns the set of IDs currently on the lattice.
// IDs are stored as their uint64 two's complement.
func (s *Single[C]) Occupants() *roaring64.Bitmap {
	return occupantBitmap(maps.Values(s.sites))
}

// Reset removes all occupants.
func (s *Single[C]) Reset() {
	clear(s.sites)
}
