package io

import (
	"sync"
	"sync/atomic"

	geojson "github.com/paulmach/go.geojson"
)

type StandardProducer struct {
	abort *atomic.Bool
}

// Builds a producer. When abort is not nil the producer stops submitting work as soon as it is set.
func NewStandardProducer(abort *atomic.Bool) *StandardProducer {
	return &StandardProducer{
		abort: abort,
	}
}

// Submits a WorkUnit per feature to the provided work channel, in collection order.
// Closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup, features []*geojson.Feature) {
	defer wg.Done()

	for i, feature := range features {
		if p.aborted() {
			break
		}
		work <- &WorkUnit{
			Index:   i,
			Feature: feature,
		}
	}
	close(work)
}

func (p *StandardProducer) aborted() bool {
	return p.abort != nil && p.abort.Load()
}
