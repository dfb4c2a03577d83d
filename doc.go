// Package lattice provides spatial occupancy indexes for lattice simulations.
//
// An index maps integer lattice coordinates (coord.Vec2 or coord.Vec3) to the
// caller-assigned identifiers of the entities located there.
//
//   - Single holds at most one occupant per coordinate.
//   - Multi holds an ordered list of distinct occupants per coordinate.
//
// # Quick Start
//
//	idx := lattice.NewSingle[coord.Vec3]()
//	idx.Set(coord.V3(0, 0, 0), 5)
//	_ = idx.Move(coord.V3(0, 0, 0), coord.V3(1, 0, 0))
//	id, _ := idx.Lookup(coord.V3(1, 0, 0)) // 5
//
// # Batch Moves
//
// MoveBatch relocates many occupants in one call. All values are read and all
// sources are released before any destination is written, so a batch may
// swap occupants or shift a chain of segments along itself:
//
//	a, b := coord.V3(0, 0, 0), coord.V3(1, 0, 0)
//	_ = idx.MoveBatch([]coord.Vec3{a, b}, []coord.Vec3{b, a}, nil) // swap
//
// # Checks
//
// Precondition checking is enabled by default. A violated precondition is a
// caller bug and is reported as an error wrapping one of ErrNotOccupied,
// ErrDuplicateOccupant, ErrOccupantNotFound or ErrLengthMismatch.
// With checks enabled every batch is validated before it mutates anything, so
// a rejected call leaves the index unchanged. WithChecks(false) skips all
// validation for speed.
//
// # Lookups
//
// Reads never create entries: IsOccupied, Lookup and Multi.Count are free of
// side effects. Single.GetOrCreate is the only read that inserts, and it does
// so explicitly.
//
// Indexes are not safe for concurrent use. Callers must serialize mutating
// calls; concurrent reads are fine while no mutation is in flight.
package lattice
