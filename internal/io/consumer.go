package io

import (
	"sync"

	geojson "github.com/paulmach/go.geojson"
)

// Converts a single feature into the target coordinate system
type FeatureConverter interface {
	ConvertFeature(feature *geojson.Feature) (*geojson.Feature, error)
}

type Consumer interface {
	Consume(workchan chan *WorkUnit, errchan chan *WorkError, waitGroup *sync.WaitGroup)
}
