package generate

import (
	"math/rand"
	"sync"
	"time"
)

// lockedRand is an injectable, concurrency-safe random source. The
// pipeline shares one across the synthesizer and normalizer; tests
// construct it with a fixed seed for reproducible output.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func newTimeSeededRand() *lockedRand {
	return newLockedRand(time.Now().UnixNano())
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Perm returns a random permutation of [0, n).
func (r *lockedRand) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Perm(n)
}
