package io

import (
	"sync"

	geojson "github.com/paulmach/go.geojson"
)

type Producer interface {
	Produce(work chan *WorkUnit, wg *sync.WaitGroup, features []*geojson.Feature)
}
