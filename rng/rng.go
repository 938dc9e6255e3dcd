// Package rng provides the explicit, splittable random stream carried by
// every episode.
//
// A Key is an immutable 64-bit seed. Split derives two independent children
// ("next" and "sub") with a SplitMix64-style mix, so an episode can consume one
// sub-stream per step for its tie-break permutation while carrying "next"
// forward. Nothing here reads global state: the same root seed always yields
// the same sequence of keys, independent of how many other episodes run.
//
// Concurrency:
//   - Key is a value type and safe to copy across goroutines.
//   - *rand.Rand returned by Rand is NOT goroutine-safe; derive one per user.
package rng

import "math/rand"

// defaultSeed replaces a zero seed so that Key(0) still mixes well.
const defaultSeed uint64 = 1

// golden is the SplitMix64 increment.
const golden uint64 = 0x9e3779b97f4a7c15

// Key is a splittable seed.
type Key uint64

// New returns the root key for seed. seed==0 maps to a fixed default.
func New(seed int64) Key {
	s := uint64(seed)
	if s == 0 {
		s = defaultSeed
	}
	return Key(mix(s))
}

// Split derives the next carried key and a one-shot sub key.
// Complexity: O(1).
func (k Key) Split() (next, sub Key) {
	return k.Fold(0), k.Fold(1)
}

// Fold derives the child key for stream id.
func (k Key) Fold(stream uint64) Key {
	x := uint64(k) ^ (stream + golden)
	x += golden
	return Key(mix(x))
}

// Rand returns a fresh *rand.Rand seeded from k.
func (k Key) Rand() *rand.Rand {
	return rand.New(rand.NewSource(int64(k)))
}

// Permutation returns a permutation of 0..n-1 drawn from k.
// n <= 0 yields an empty slice. Complexity: O(n) time and space.
func (k Key) Permutation(n int) []int {
	if n <= 0 {
		return []int{}
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(p, k.Rand())

	return p
}

// Shuffle performs an in-place Fisher–Yates shuffle of a using r.
func Shuffle[T any](a []T, r *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// mix is the SplitMix64 finalizer.
func mix(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
