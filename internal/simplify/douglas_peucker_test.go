package simplify

import (
	"reflect"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

func zigzag() [][]float64 {
	return [][]float64{{0, 0}, {1, 0.1}, {2, 0}, {3, 0.1}, {4, 0}}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name      string
		line      [][]float64
		tolerance float64
		want      [][]float64
	}{
		{"collinear within tolerance", zigzag(), 0.1, [][]float64{{0, 0}, {4, 0}}},
		{"below tolerance keeps all", zigzag(), 0.05, zigzag()},
		{"zero tolerance", zigzag(), 0, zigzag()},
		{"negative tolerance", zigzag(), -1, zigzag()},
		{"two points", [][]float64{{0, 0}, {5, 5}}, 10, [][]float64{{0, 0}, {5, 5}}},
		{
			"spike kept",
			[][]float64{{0, 0}, {1, 0.01}, {2, 5}, {3, 0.01}, {4, 0}},
			1,
			[][]float64{{0, 0}, {2, 5}, {4, 0}},
		},
		{
			"extra dimensions follow their position",
			[][]float64{{0, 0, 10}, {1, 0.01, 11}, {2, 0, 12}},
			0.5,
			[][]float64{{0, 0, 10}, {2, 0, 12}},
		},
		{"short position left alone", [][]float64{{0, 0}, {1}, {2, 0}}, 1, [][]float64{{0, 0}, {1}, {2, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Line(tt.line, tt.tolerance); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Line() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRing(t *testing.T) {
	square := [][]float64{{0, 0}, {5, 0.01}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}

	got := Ring(square, 0.5)
	want := [][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ring() = %v, want %v", got, want)
	}

	// a sliver collapsing to a line keeps its original positions
	sliver := [][]float64{{0, 0}, {5, 0.01}, {10, 0}, {5, -0.01}, {0, 0}}
	if got := Ring(sliver, 1); !reflect.DeepEqual(got, sliver) {
		t.Errorf("collapsed ring = %v, want original", got)
	}

	open := [][]float64{{0, 0}, {5, 0.01}, {10, 0}, {10, 10}, {0, 10}}
	if got := Ring(open, 0.5); !reflect.DeepEqual(got, open) {
		t.Errorf("open ring changed: %v", got)
	}
}

func TestGeometry(t *testing.T) {
	polygon := geojson.NewPolygonGeometry([][][]float64{
		{{0, 0}, {5, 0.01}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {2.01, 3}, {2, 4}, {4, 4}, {4, 2}, {2, 2}},
	})

	out := Geometry(polygon, 0.5)
	if len(out.Polygon) != 2 {
		t.Fatalf("ring count = %d, want 2", len(out.Polygon))
	}
	if len(out.Polygon[0]) != 5 || len(out.Polygon[1]) != 5 {
		t.Errorf("ring sizes = %d, %d, want 5, 5", len(out.Polygon[0]), len(out.Polygon[1]))
	}
	if len(polygon.Polygon[0]) != 6 {
		t.Error("input modified")
	}

	point := geojson.NewPointGeometry([]float64{1, 2})
	if got := Geometry(point, 1); !reflect.DeepEqual(got.Point, point.Point) {
		t.Errorf("point changed: %v", got.Point)
	}

	multipoint := geojson.NewMultiPointGeometry([]float64{0, 0}, []float64{1, 0.01}, []float64{2, 0})
	if got := Geometry(multipoint, 1); len(got.MultiPoint) != 3 {
		t.Errorf("multipoint simplified to %d points", len(got.MultiPoint))
	}

	if got := Geometry(polygon, 0); got != polygon {
		t.Error("zero tolerance must return the input")
	}
	if Geometry(nil, 1) != nil {
		t.Error("nil geometry")
	}
}

func TestGeometry_Collection(t *testing.T) {
	in := geojson.NewCollectionGeometry(
		geojson.NewLineStringGeometry(zigzag()),
		geojson.NewCollectionGeometry(
			geojson.NewMultiLineStringGeometry(zigzag(), [][]float64{{0, 0}, {1, 1}}),
			geojson.NewMultiPolygonGeometry([][][]float64{{{0, 0}, {5, 0.01}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}),
		),
		nil,
	)

	out := Geometry(in, 0.2)
	if out == in || len(out.Geometries) != 3 {
		t.Fatalf("collection = %+v", out)
	}
	if len(out.Geometries[0].LineString) != 2 {
		t.Errorf("line = %v", out.Geometries[0].LineString)
	}
	nested := out.Geometries[1]
	if nested == in.Geometries[1] || nested.Type != geojson.GeometryCollection {
		t.Fatal("nested collection not copied")
	}
	if len(nested.Geometries[0].MultiLineString[0]) != 2 || len(nested.Geometries[0].MultiLineString[1]) != 2 {
		t.Errorf("multilinestring = %v", nested.Geometries[0].MultiLineString)
	}
	if len(nested.Geometries[1].MultiPolygon[0][0]) != 5 {
		t.Errorf("multipolygon ring = %v", nested.Geometries[1].MultiPolygon[0][0])
	}
	if out.Geometries[2] != nil {
		t.Error("nil member must stay nil")
	}
	if len(in.Geometries[0].LineString) != 5 {
		t.Error("input modified")
	}
}
