package generator

import (
	"math/rand"
	"time"
)

// Source is the randomness every sampler draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a reproducible source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewRandomSource returns a source seeded from the clock.
func NewRandomSource() Source {
	return NewSource(time.Now().UnixNano())
}

// Sampler implements the primitive draws over the lexical pools.
// It is not safe for concurrent use.
type Sampler struct {
	src Source
}

func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// Pick returns a uniformly chosen element. The pool must not be empty.
func Pick[T any](s *Sampler, pool []T) T {
	return pool[s.src.Intn(len(pool))]
}

// Pick is the string shorthand used by most callers.
func (s *Sampler) Pick(pool []string) string {
	return Pick(s, pool)
}

// IntRange returns a value in [min, max], both inclusive.
func (s *Sampler) IntRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + s.src.Intn(max-min+1)
}

func (s *Sampler) Int64Range(min, max int64) int64 {
	return int64(s.IntRange(int(min), int(max)))
}

func (s *Sampler) Float64() float64 {
	return s.src.Float64()
}

// Chance is true with probability p.
func (s *Sampler) Chance(p float64) bool {
	return s.src.Float64() > 1-p
}

// Subset draws size distinct elements (Fisher-Yates); size is clamped to the pool.
func (s *Sampler) Subset(pool []string, size int) []string {
	if size > len(pool) {
		size = len(pool)
	}
	if size <= 0 {
		return []string{}
	}
	shuffled := append([]string(nil), pool...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.src.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:size]
}

// Fork derives an independent sampler, e.g. for one goroutine of a parallel build.
func (s *Sampler) Fork() *Sampler {
	return NewSampler(NewSource(int64(s.src.Intn(1 << 31))))
}
