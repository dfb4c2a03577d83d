package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmiermans/lattice-hashmap/coord"
)

func TestMulti(t *testing.T) {
	origin := coord.V3(0, 0, 0)
	x := coord.V3(1, 0, 0)
	y := coord.V3(0, 1, 0)

	t.Run("BindAndRelease", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		assert.Equal(t, 0, m.Count(origin))
		assert.False(t, m.IsOccupied(origin))

		require.NoError(t, m.Bind(1, origin))
		require.NoError(t, m.Bind(2, origin))
		assert.Equal(t, 2, m.Count(origin))
		assert.Equal(t, []ID{1, 2}, m.Lookup(origin))

		require.NoError(t, m.Release(1, origin))
		assert.Equal(t, 1, m.Count(origin))
		assert.True(t, m.IsOccupied(origin))

		require.NoError(t, m.Release(2, origin))
		assert.False(t, m.IsOccupied(origin))
		assert.Equal(t, 0, m.Len())
	})

	t.Run("CountDoesNotCreate", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		assert.Equal(t, 0, m.Count(origin))
		assert.Nil(t, m.Lookup(origin))
		assert.Equal(t, 0, m.Len())
	})

	t.Run("DuplicateBind", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(1, origin))

		err := m.Bind(1, origin)
		assert.ErrorIs(t, err, ErrDuplicateOccupant)
		assert.Equal(t, 1, m.Count(origin))

		var ce *CoordError[coord.Vec3]
		require.ErrorAs(t, err, &ce)
		assert.True(t, ce.HasID)
		assert.Equal(t, ID(1), ce.ID)

		// The same ID may sit elsewhere.
		assert.NoError(t, m.Bind(1, x))
	})

	t.Run("ReleaseErrors", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		assert.ErrorIs(t, m.Release(1, origin), ErrNotOccupied)

		require.NoError(t, m.Bind(1, origin))
		assert.ErrorIs(t, m.Release(2, origin), ErrOccupantNotFound)
		assert.Equal(t, []ID{1}, m.Lookup(origin))
	})

	t.Run("ReleaseKeepsOrder", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		for _, id := range []ID{1, 2, 3, 4} {
			require.NoError(t, m.Bind(id, origin))
		}
		require.NoError(t, m.Release(2, origin))
		assert.Equal(t, []ID{1, 3, 4}, m.Lookup(origin))
	})

	t.Run("Unchecked", func(t *testing.T) {
		m := NewMulti[coord.Vec3](WithChecks(false))
		assert.NoError(t, m.Release(1, origin))
		assert.False(t, m.IsOccupied(origin))

		require.NoError(t, m.Bind(1, origin))
		require.NoError(t, m.Bind(1, origin))
		assert.Equal(t, 2, m.Count(origin))

		// Only the first match is removed.
		require.NoError(t, m.Release(1, origin))
		assert.Equal(t, []ID{1}, m.Lookup(origin))
	})

	t.Run("LookupIsCopy", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(1, origin))

		ids := m.Lookup(origin)
		ids[0] = 99
		assert.Equal(t, []ID{1}, m.Lookup(origin))
	})

	t.Run("Update", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(1, origin))
		require.NoError(t, m.Bind(2, origin))

		require.NoError(t, m.Update(origin, func(ids []ID) []ID {
			return append(ids, 3)
		}))
		assert.Equal(t, []ID{1, 2, 3}, m.Lookup(origin))

		err := m.Update(origin, func(ids []ID) []ID {
			return append(ids, 1)
		})
		assert.ErrorIs(t, err, ErrDuplicateOccupant)
		assert.Equal(t, []ID{1, 2, 3}, m.Lookup(origin))

		require.NoError(t, m.Update(origin, func([]ID) []ID { return nil }))
		assert.False(t, m.IsOccupied(origin))

		// Updating an empty site to empty must not leave an entry behind.
		require.NoError(t, m.Update(y, func(ids []ID) []ID { return ids }))
		assert.False(t, m.IsOccupied(y))
		assert.Equal(t, 0, m.Len())
	})

	t.Run("Move", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(1, origin))
		require.NoError(t, m.Bind(2, x))

		require.NoError(t, m.Move(1, origin, x))
		assert.False(t, m.IsOccupied(origin))
		assert.Equal(t, []ID{2, 1}, m.Lookup(x))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(7, origin))

		require.NoError(t, m.Move(7, origin, y))
		require.NoError(t, m.Move(7, y, origin))

		assert.Equal(t, []ID{7}, m.Lookup(origin))
		assert.False(t, m.IsOccupied(y))
	})

	t.Run("Swap", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(1, x))
		require.NoError(t, m.Bind(2, y))

		require.NoError(t, m.MoveBatch([]ID{1, 2}, []coord.Vec3{x, y}, []coord.Vec3{y, x}, nil))
		assert.Equal(t, []ID{2}, m.Lookup(x))
		assert.Equal(t, []ID{1}, m.Lookup(y))
	})

	t.Run("NewIDs", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(7, origin))

		require.NoError(t, m.MoveBatch([]ID{7}, []coord.Vec3{origin}, []coord.Vec3{x}, []ID{9}))
		assert.Equal(t, []ID{9}, m.Lookup(x))
		assert.False(t, m.IsOccupied(origin))
	})

	t.Run("SharedSite", func(t *testing.T) {
		// Two occupants leave one site and one arrives in the same batch.
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(1, origin))
		require.NoError(t, m.Bind(2, origin))
		require.NoError(t, m.Bind(3, x))

		require.NoError(t, m.MoveBatch(
			[]ID{1, 2, 3},
			[]coord.Vec3{origin, origin, x},
			[]coord.Vec3{x, y, origin},
			nil,
		))
		assert.Equal(t, []ID{3}, m.Lookup(origin))
		assert.Equal(t, []ID{1}, m.Lookup(x))
		assert.Equal(t, []ID{2}, m.Lookup(y))
	})

	t.Run("Occupants", func(t *testing.T) {
		m := NewMulti[coord.Vec3]()
		require.NoError(t, m.Bind(1, origin))
		require.NoError(t, m.Bind(2, origin))
		require.NoError(t, m.Bind(1, x))

		rb := m.Occupants()
		assert.Equal(t, uint64(2), rb.GetCardinality())
		assert.ElementsMatch(t, []uint64{1, 2}, rb.ToArray())
	})

	t.Run("All", func(t *testing.T) {
		m := NewMulti[coord.Vec2]()
		require.NoError(t, m.Bind(1, coord.V2(0, 0)))
		require.NoError(t, m.Bind(2, coord.V2(0, 0)))
		require.NoError(t, m.Bind(3, coord.V2(1, 0)))

		total := 0
		for _, ids := range m.All() {
			total += len(ids)
		}
		assert.Equal(t, 3, total)

		m.Reset()
		assert.Equal(t, 0, m.Len())
	})
}

func TestMultiMoveBatchRejected(t *testing.T) {
	a, b, c := coord.V3(0, 0, 0), coord.V3(1, 0, 0), coord.V3(2, 0, 0)

	tests := []struct {
		name   string
		ids    []ID
		from   []coord.Vec3
		to     []coord.Vec3
		newIDs []ID
		want   error
	}{
		{"ToMismatch", []ID{1}, []coord.Vec3{a}, nil, nil, ErrLengthMismatch},
		{"IDsMismatch", []ID{1, 2}, []coord.Vec3{a}, []coord.Vec3{c}, nil, ErrLengthMismatch},
		{"NewIDsMismatch", []ID{1}, []coord.Vec3{a}, []coord.Vec3{c}, []ID{4, 5}, ErrLengthMismatch},
		{"EmptySource", []ID{1}, []coord.Vec3{c}, []coord.Vec3{a}, nil, ErrNotOccupied},
		{"AbsentOccupant", []ID{3}, []coord.Vec3{a}, []coord.Vec3{c}, nil, ErrOccupantNotFound},
		{"DrainedSource", []ID{1, 1}, []coord.Vec3{b, b}, []coord.Vec3{c, a}, nil, ErrNotOccupied},
		{"DuplicateAtDestination", []ID{1}, []coord.Vec3{b}, []coord.Vec3{a}, nil, ErrDuplicateOccupant},
		// The first release succeeds on the staged copy; the second must not leak.
		{"LateFailure", []ID{1, 9}, []coord.Vec3{a, b}, []coord.Vec3{c, c}, nil, ErrOccupantNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMulti[coord.Vec3]()
			require.NoError(t, m.Bind(1, a))
			require.NoError(t, m.Bind(2, a))
			require.NoError(t, m.Bind(1, b))

			err := m.MoveBatch(tt.ids, tt.from, tt.to, tt.newIDs)
			assert.ErrorIs(t, err, tt.want)

			assert.Equal(t, []ID{1, 2}, m.Lookup(a))
			assert.Equal(t, []ID{1}, m.Lookup(b))
			assert.False(t, m.IsOccupied(c))
			assert.Equal(t, 2, m.Len())
		})
	}
}

func TestMultiMoveBatchUnchecked(t *testing.T) {
	a, b := coord.V3(0, 0, 0), coord.V3(1, 0, 0)

	m := NewMulti[coord.Vec3](WithChecks(false))
	require.NoError(t, m.Bind(1, a))
	require.NoError(t, m.Bind(2, a))

	require.NoError(t, m.MoveBatch([]ID{1, 2}, []coord.Vec3{a, a}, []coord.Vec3{b}, nil))
	assert.Equal(t, []ID{1}, m.Lookup(b))
	assert.Equal(t, []ID{2}, m.Lookup(a))

	// Releasing an absent occupant is a no-op; the bind still happens.
	require.NoError(t, m.Move(9, a, b))
	assert.Equal(t, []ID{2}, m.Lookup(a))
	assert.Equal(t, []ID{1, 9}, m.Lookup(b))

	require.NoError(t, m.Move(2, a, b))
	assert.False(t, m.IsOccupied(a))
	assert.Equal(t, []ID{1, 9, 2}, m.Lookup(b))
}
