package io

import (
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
	geojson "github.com/paulmach/go.geojson"
)

type StandardConsumer struct {
	converter FeatureConverter
	results   []*geojson.Feature
	abort     *atomic.Bool
}

// Builds a consumer writing converted features into results at the index of their WorkUnit.
// results is shared by all the consumers of a collection, each slot is written by one consumer only.
// When abort is not nil the first failure sets it and every consumer stops converting.
func NewStandardConsumer(converter FeatureConverter, results []*geojson.Feature, abort *atomic.Bool) *StandardConsumer {
	return &StandardConsumer{
		converter: converter,
		results:   results,
		abort:     abort,
	}
}

// Continually consumes WorkUnits submitted to a work channel storing the converted features.
// Continues working until the work channel is closed. Failures are submitted to the error channel,
// which must be able to buffer one error per submitted WorkUnit.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan *WorkError, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	for work := range workchan {
		// keep draining after an abort so the producer never blocks
		if c.abort != nil && c.abort.Load() {
			continue
		}

		converted, err := c.converter.ConvertFeature(work.Feature)
		if err != nil {
			glog.V(2).Infof("feature %d failed: %v", work.Index, err)
			errchan <- &WorkError{Index: work.Index, Err: err}
			if c.abort != nil {
				c.abort.Store(true)
			}
			continue
		}

		c.results[work.Index] = converted
	}
}
