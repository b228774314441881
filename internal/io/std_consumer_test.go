package io

import (
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

// Tags features with their "n" property doubled, fails on negative values
type doublingConverter struct {
	calls atomic.Int64
}

func (c *doublingConverter) ConvertFeature(f *geojson.Feature) (*geojson.Feature, error) {
	c.calls.Add(1)
	n := f.Properties["n"].(int)
	if n < 0 {
		return nil, stderrors.New("negative")
	}
	out := *f
	out.Properties = map[string]interface{}{"n": n * 2}
	return &out, nil
}

func features(values ...int) []*geojson.Feature {
	out := make([]*geojson.Feature, len(values))
	for i, v := range values {
		f := geojson.NewPointFeature([]float64{0, 0})
		f.SetProperty("n", v)
		out[i] = f
	}
	return out
}

func run(t *testing.T, input []*geojson.Feature, workers int, abort *atomic.Bool) ([]*geojson.Feature, []*WorkError, *doublingConverter) {
	t.Helper()

	results := make([]*geojson.Feature, len(input))
	workChannel := make(chan *WorkUnit, workers*5)
	errorChannel := make(chan *WorkError, len(input))
	converter := &doublingConverter{}

	var waitGroup sync.WaitGroup
	waitGroup.Add(1)
	go NewStandardProducer(abort).Produce(workChannel, &waitGroup, input)
	for i := 0; i < workers; i++ {
		waitGroup.Add(1)
		go NewStandardConsumer(converter, results, abort).Consume(workChannel, errorChannel, &waitGroup)
	}
	waitGroup.Wait()
	close(errorChannel)

	var failures []*WorkError
	for err := range errorChannel {
		failures = append(failures, err)
	}
	return results, failures, converter
}

func TestProducerConsumer_Order(t *testing.T) {
	values := make([]int, 200)
	for i := range values {
		values[i] = i
	}

	results, failures, _ := run(t, features(values...), 4, nil)
	if len(failures) != 0 {
		t.Fatalf("failures = %v", failures)
	}
	for i, f := range results {
		if f == nil || f.Properties["n"] != i*2 {
			t.Fatalf("results[%d] = %v", i, f)
		}
	}
}

func TestProducerConsumer_CollectsEveryFailure(t *testing.T) {
	results, failures, _ := run(t, features(1, -1, 2, -2, 3), 3, nil)

	if len(failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(failures))
	}
	seen := map[int]bool{}
	for _, f := range failures {
		seen[f.Index] = true
	}
	if !seen[1] || !seen[3] {
		t.Errorf("failed indexes = %v", seen)
	}
	if results[1] != nil || results[3] != nil {
		t.Error("failed slots must stay empty")
	}
	if results[0] == nil || results[2] == nil || results[4] == nil {
		t.Error("successful features missing")
	}
}

func TestProducerConsumer_Abort(t *testing.T) {
	values := make([]int, 1000)
	for i := range values {
		values[i] = i
	}
	values[0] = -1

	var abort atomic.Bool
	_, failures, converter := run(t, features(values...), 1, &abort)

	if len(failures) != 1 || failures[0].Index != 0 {
		t.Fatalf("failures = %v", failures)
	}
	if !abort.Load() {
		t.Error("abort flag not set")
	}
	if converter.calls.Load() != 1 {
		t.Errorf("converter called %d times after the abort", converter.calls.Load())
	}
}
