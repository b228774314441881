package pool

import (
	"sync"
	"testing"

	"github.com/ecopia-map/geo_reprojector/internal/geometry"
)

func fill(buf []geometry.Coordinate, n int) []geometry.Coordinate {
	for i := 0; i < n; i++ {
		buf = append(buf, geometry.Coordinate{X: float64(i), Y: float64(i * 2)})
	}
	return buf
}

func TestPool_AcquireFresh(t *testing.T) {
	p := NewPool(16)

	buf := p.Acquire(KindLine, 4)
	if len(buf) != 0 {
		t.Errorf("len = %d, want 0", len(buf))
	}
	if cap(buf) < 16 {
		t.Errorf("cap = %d, want at least the initial capacity 16", cap(buf))
	}

	big := p.Acquire(KindLine, 100)
	if cap(big) < 100 {
		t.Errorf("cap = %d, want at least 100", cap(big))
	}

	if s := p.Stats(); s.Misses != 2 || s.Hits != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestPool_ReuseSmallerRequest(t *testing.T) {
	p := NewPool(0)

	buf := p.Acquire(KindLine, 10)
	buf = fill(buf, 10)
	p.Release(KindLine, buf)

	again := p.Acquire(KindLine, 5)
	if len(again) != 0 {
		t.Errorf("reused buffer has %d elements, want 0", len(again))
	}
	if cap(again) < 10 {
		t.Errorf("cap = %d, want at least 10", cap(again))
	}
	if &again[:1][0] != &buf[0] {
		t.Error("expected the released array to be reused")
	}
	if s := p.Stats(); s.Hits != 1 || s.Releases != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestPool_GrowOnLargerRequest(t *testing.T) {
	p := NewPool(0)

	p.Release(KindLine, fill(p.Acquire(KindLine, 4), 4))

	buf := p.Acquire(KindLine, 50)
	if len(buf) != 0 || cap(buf) < 50 {
		t.Errorf("len = %d cap = %d, want 0 and >= 50", len(buf), cap(buf))
	}

	if s := p.Stats(); s.Misses != 2 || s.Hits != 0 {
		t.Errorf("undersized buffer counted as hit: %+v", s)
	}

	p.Release(KindLine, buf)
	again := p.Acquire(KindLine, 10)
	if cap(again) < 50 {
		t.Errorf("capacity shrank to %d", cap(again))
	}
	if s := p.Stats(); s.Misses != 2 || s.Hits != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestPool_KindsAreSeparate(t *testing.T) {
	p := NewPool(0)

	p.Release(KindPoint, fill(p.Acquire(KindPoint, 3), 3))
	if p.Available(KindPoint) != 1 || p.Available(KindLine) != 0 {
		t.Fatalf("available point=%d line=%d", p.Available(KindPoint), p.Available(KindLine))
	}

	p.Acquire(KindLine, 3)
	if p.Available(KindPoint) != 1 {
		t.Error("acquiring a line buffer must not consume point buffers")
	}
}

func TestPool_Nil(t *testing.T) {
	var p *Pool

	buf := p.Acquire(KindLine, 8)
	if len(buf) != 0 || cap(buf) < 8 {
		t.Errorf("len = %d cap = %d", len(buf), cap(buf))
	}
	p.Release(KindLine, buf)
	if p.Available(KindLine) != 0 {
		t.Error("nil pool keeps nothing")
	}
	if p.Stats() != (Stats{}) {
		t.Error("nil pool has no stats")
	}
}

func TestSharedPool_Concurrent(t *testing.T) {
	p := NewSharedPool(8)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				buf := p.Acquire(KindLine, i%32)
				buf = fill(buf, i%32)
				p.Release(KindLine, buf)
			}
		}()
	}
	wg.Wait()

	s := p.Stats()
	if s.Hits+s.Misses != 1600 || s.Releases != 1600 {
		t.Errorf("stats = %+v", s)
	}
	if p.Available(KindLine) > 8 {
		t.Errorf("at most one buffer per worker should be pooled, got %d", p.Available(KindLine))
	}
}
