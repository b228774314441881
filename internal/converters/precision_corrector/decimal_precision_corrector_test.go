package precision_corrector

import (
	"testing"

	"github.com/ecopia-map/geo_reprojector/internal/geometry"
)

func TestDecimalPrecisionCorrector(t *testing.T) {
	tests := []struct {
		name   string
		places int32
		in     geometry.Coordinate
		want   geometry.Coordinate
	}{
		{"two places", 2, geometry.Coordinate{X: 1489158.3713845, Y: 6894699.7998637}, geometry.Coordinate{X: 1489158.37, Y: 6894699.8}},
		{"half away from zero", 2, geometry.Coordinate{X: 0.125, Y: -0.125}, geometry.Coordinate{X: 0.13, Y: -0.13}},
		{"zero places", 0, geometry.Coordinate{X: 2.5, Y: -7.4}, geometry.Coordinate{X: 3, Y: -7}},
		{"already exact", 6, geometry.Coordinate{X: 13.377, Y: 52.518}, geometry.Coordinate{X: 13.377, Y: 52.518}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDecimalPrecisionCorrector(tt.places).CorrectCoordinate(tt.in)
			if got != tt.want {
				t.Errorf("CorrectCoordinate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecimalPrecisionCorrector_Deterministic(t *testing.T) {
	c := NewDecimalPrecisionCorrector(3)
	in := geometry.Coordinate{X: 1113194.9079327357, Y: 1118890.0218505105}
	if c.CorrectCoordinate(in) != c.CorrectCoordinate(in) {
		t.Error("rounding the same value twice must give the same result")
	}
}
