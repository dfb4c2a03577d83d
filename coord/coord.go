// Package coord defines the integer lattice coordinates used as index keys.
//
// Coordinates are fixed-size arrays, so they are comparable, hashable by the
// Go runtime and copied by value. They are never mutated in place.
package coord

import "fmt"

// Vec2 is a point on a two-dimensional integer lattice.
type Vec2 [2]int

// Vec3 is a point on a three-dimensional integer lattice.
type Vec3 [3]int

// Coord is the set of coordinate types an index can be instantiated with.
// The arity is fixed by the type parameter.
type Coord interface {
	Vec2 | Vec3
}

// V2 returns the Vec2 (x, y).
func V2(x, y int) Vec2 { return Vec2{x, y} }

// V3 returns the Vec3 (x, y, z).
func V3(x, y, z int) Vec3 { return Vec3{x, y, z} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v[0] + o[0], v[1] + o[1]} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Hash returns the xor of the components.
// Maps keyed by Vec2 do not need it; it exists for callers bucketing
// coordinates in their own tables.
func (v Vec2) Hash() uint64 { return uint64(v[0]) ^ uint64(v[1]) }

// Hash returns the xor of the components.
func (v Vec3) Hash() uint64 { return uint64(v[0]) ^ uint64(v[1]) ^ uint64(v[2]) }

func (v Vec2) String() string { return fmt.Sprintf("(%d,%d)", v[0], v[1]) }

func (v Vec3) String() string { return fmt.Sprintf("(%d,%d,%d)", v[0], v[1], v[2]) }
