package testutil

import (
	"math/rand"
	"sync"

	"github.com/kmiermans/lattice-hashmap/coord"
)

// RNG encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Vec2 returns a coordinate with each component in [-bound, bound].
func (r *RNG) Vec2(bound int) coord.Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return coord.Vec2{r.component(bound), r.component(bound)}
}

// Vec3 returns a coordinate with each component in [-bound, bound].
func (r *RNG) Vec3(bound int) coord.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return coord.Vec3{r.component(bound), r.component(bound), r.component(bound)}
}

// DistinctVec3 returns n pairwise distinct coordinates with components in
// [-bound, bound]. It panics if the cube has fewer than n sites.
func (r *RNG) DistinctVec3(n, bound int) []coord.Vec3 {
	side := 2*bound + 1
	if side*side*side < n {
		panic("testutil: lattice too small for requested coordinate count")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[coord.Vec3]struct{}, n)
	out := make([]coord.Vec3, 0, n)
	for len(out) < n {
		c := coord.Vec3{r.component(bound), r.component(bound), r.component(bound)}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Neighbor6 returns one of the six unit lattice steps from c.
func (r *RNG) Neighbor6(c coord.Vec3) coord.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var step coord.Vec3
	axis := r.rand.Intn(3)
	if r.rand.Intn(2) == 0 {
		step[axis] = 1
	} else {
		step[axis] = -1
	}
	return c.Add(step)
}

// component must be called with r.mu held.
func (r *RNG) component(bound int) int {
	return r.rand.Intn(2*bound+1) - bound
}
