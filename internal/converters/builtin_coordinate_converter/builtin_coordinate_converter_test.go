package builtin_coordinate_converter

import (
	"errors"
	"math"
	"testing"

	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
)

func newEngine(t *testing.T, source, target string) converters.Engine {
	t.Helper()
	engine, err := NewBuiltinEngineFactory().NewEngine(source, target)
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestBuiltinEngine_Convert(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		target    string
		in        geometry.Coordinate
		want      geometry.Coordinate
		tolerance float64
	}{
		{"origin to web mercator", "EPSG:4326", "EPSG:3857", geometry.Coordinate{X: 0, Y: 0}, geometry.Coordinate{X: 0, Y: 0}, 1e-9},
		{"antimeridian to web mercator", "EPSG:4326", "EPSG:3857", geometry.Coordinate{X: 180, Y: 0}, geometry.Coordinate{X: 20037508.342789244, Y: 0}, 1e-6},
		{"45N to web mercator", "EPSG:4326", "EPSG:3857", geometry.Coordinate{X: 0, Y: 45}, geometry.Coordinate{X: 0, Y: 5621521.486192066}, 1e-6},
		{"web mercator to wgs84", "EPSG:3857", "EPSG:4326", geometry.Coordinate{X: 20037508.342789244, Y: 5621521.486192066}, geometry.Coordinate{X: 180, Y: 45}, 1e-9},
		{"45N to world mercator", "EPSG:4326", "EPSG:3395", geometry.Coordinate{X: 0, Y: 45}, geometry.Coordinate{X: 0, Y: 5591295.9185}, 1e-2},
		{"world mercator to wgs84", "EPSG:3395", "EPSG:4326", geometry.Coordinate{X: 0, Y: 5591295.918553392}, geometry.Coordinate{X: 0, Y: 45}, 1e-8},
		{"identity", "EPSG:4326", "urn:ogc:def:crs:OGC:1.3:CRS84", geometry.Coordinate{X: 13.377, Y: 52.518}, geometry.Coordinate{X: 13.377, Y: 52.518}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newEngine(t, tt.source, tt.target).Convert(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got.X-tt.want.X) > tt.tolerance || math.Abs(got.Y-tt.want.Y) > tt.tolerance {
				t.Errorf("Convert(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuiltinEngine_RoundTrip(t *testing.T) {
	forward := newEngine(t, "EPSG:4326", "EPSG:3395")
	inverse := newEngine(t, "EPSG:3395", "EPSG:4326")

	for _, c := range []geometry.Coordinate{{X: -16, Y: 20.25}, {X: 30.4, Y: 40.8}, {X: 120, Y: -75}} {
		projected, err := forward.Convert(c)
		if err != nil {
			t.Fatal(err)
		}
		back, err := inverse.Convert(projected)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(back.X-c.X) > 1e-9 || math.Abs(back.Y-c.Y) > 1e-9 {
			t.Errorf("round trip of %v gave %v", c, back)
		}
	}
}

func TestBuiltinEngine_ConvertArrayMatchesConvert(t *testing.T) {
	engine := newEngine(t, "EPSG:4326", "EPSG:3857")
	coords := []geometry.Coordinate{{X: -16, Y: 20.25}, {X: -10, Y: 25}, {X: 0, Y: 0}, {X: 30.4, Y: 40.8}}
	expected := make([]geometry.Coordinate, len(coords))
	for i, c := range coords {
		var err error
		if expected[i], err = engine.Convert(c); err != nil {
			t.Fatal(err)
		}
	}

	if err := engine.ConvertArray(coords); err != nil {
		t.Fatal(err)
	}
	for i := range coords {
		if coords[i] != expected[i] {
			t.Errorf("coords[%d] = %v, want %v", i, coords[i], expected[i])
		}
	}
}

func TestBuiltinEngine_OutOfDomain(t *testing.T) {
	engine := newEngine(t, "EPSG:4326", "EPSG:3857")

	if _, err := engine.Convert(geometry.Coordinate{X: 0, Y: 89}); !errors.Is(err, errOutOfDomain) {
		t.Errorf("expected out of domain error, got %v", err)
	}

	coords := []geometry.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 300, Y: 1}}
	err := engine.ConvertArray(coords)
	var offsetErr *converters.OffsetError
	if !errors.As(err, &offsetErr) {
		t.Fatalf("expected *OffsetError, got %v", err)
	}
	if offsetErr.Offset != 2 {
		t.Errorf("offset = %d, want 2", offsetErr.Offset)
	}
}

func TestBuiltinEngineFactory_Unsupported(t *testing.T) {
	factory := NewBuiltinEngineFactory()
	for _, pair := range [][2]string{
		{"EPSG:4326", "EPSG:25832"},
		{"not-a-crs", "EPSG:3857"},
		{"EPSG:4326", "+proj=merc"},
	} {
		if _, err := factory.NewEngine(pair[0], pair[1]); err == nil {
			t.Errorf("NewEngine(%q, %q) should fail", pair[0], pair[1])
		}
	}
}

func TestBuiltinEngineFactory_KnownSystems(t *testing.T) {
	factory := NewBuiltinEngineFactory()
	for _, id := range factory.KnownSystems() {
		for _, other := range factory.KnownSystems() {
			if _, err := factory.NewEngine(id, other); err != nil {
				t.Errorf("known pair %s -> %s failed: %v", id, other, err)
			}
		}
	}
}
