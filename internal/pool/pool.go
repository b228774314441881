package pool

import (
	"sync"

	"github.com/ecopia-map/geo_reprojector/internal/geometry"
)

// Kind of buffer kept in the pool. Each kind has its own free list.
type Kind int

const (
	// scratch for point-like geometries (Point, MultiPoint)
	KindPoint Kind = iota
	// scratch for lines and polygon rings
	KindLine

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	}
	return "unknown"
}

// Counters describing how the pool was used
type Stats struct {
	Hits     int64 // acquisitions served from a free list
	Misses   int64 // acquisitions that had to allocate
	Releases int64
}

// Recycles coordinate buffers across conversions.
//
// A buffer obtained with Acquire is checked out until it is handed back with Release. Releasing
// the same buffer twice, or using a buffer after releasing it, is a caller error the pool does
// not detect. A nil *Pool is valid: Acquire allocates and Release does nothing.
type Pool struct {
	mu              sync.Locker
	free            [kindCount][][]geometry.Coordinate
	initialCapacity int
	stats           Stats
}

// Builds a pool meant to be owned by a single goroutine
func NewPool(initialCapacity int) *Pool {
	return &Pool{
		mu:              noopLocker{},
		initialCapacity: initialCapacity,
	}
}

// Builds a pool whose Acquire and Release calls are serialized, so it can be shared by workers
func NewSharedPool(initialCapacity int) *Pool {
	return &Pool{
		mu:              &sync.Mutex{},
		initialCapacity: initialCapacity,
	}
}

// Returns a buffer of zero length and at least minimumCapacity capacity. A previously released
// buffer of the same kind is reused when available.
func (p *Pool) Acquire(kind Kind, minimumCapacity int) []geometry.Coordinate {
	if p == nil {
		return make([]geometry.Coordinate, 0, minimumCapacity)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	list := p.free[kind]
	if n := len(list); n > 0 {
		buf := list[n-1]
		list[n-1] = nil
		p.free[kind] = list[:n-1]
		if cap(buf) >= minimumCapacity {
			p.stats.Hits++
			return buf[:0]
		}
		// capacity only grows, the smaller array is dropped
	}

	p.stats.Misses++
	capacity := p.initialCapacity
	if minimumCapacity > capacity {
		capacity = minimumCapacity
	}
	return make([]geometry.Coordinate, 0, capacity)
}

// Hands a buffer back to the pool. Its content is discarded, its capacity kept for reuse.
func (p *Pool) Release(kind Kind, buf []geometry.Coordinate) {
	if p == nil || buf == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.free[kind] = append(p.free[kind], buf[:0])
	p.stats.Releases++
}

// Number of buffers of the given kind waiting in the free list
func (p *Pool) Available(kind Kind) int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free[kind])
}

func (p *Pool) Stats() Stats {
	if p == nil {
		return Stats{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}
