// Package testutil provides testing utilities for lattice indexes.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source for coordinates and occupant IDs.
//
//	rng := testutil.NewRNG(seed)
//	c := rng.Vec3(16)              // each component in [-16, 16]
//	sites := rng.DistinctVec3(100, 8)
//	order := rng.Perm(100)
package testutil
