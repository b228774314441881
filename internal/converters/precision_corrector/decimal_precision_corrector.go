package precision_corrector

import (
	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
	"github.com/shopspring/decimal"
)

// Rounds converted coordinates half away from zero to a fixed number of decimal places.
// Rounding goes through a decimal representation so that e.g. 0.125 rounds to 0.13 and not to
// the nearest binary neighbour.
type DecimalPrecisionCorrector struct {
	Places int32
}

func NewDecimalPrecisionCorrector(places int32) converters.CoordinateCorrector {
	return &DecimalPrecisionCorrector{
		Places: places,
	}
}

func (c *DecimalPrecisionCorrector) CorrectCoordinate(coord geometry.Coordinate) geometry.Coordinate {
	return geometry.Coordinate{
		X: c.round(coord.X),
		Y: c.round(coord.Y),
	}
}

func (c *DecimalPrecisionCorrector) round(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(c.Places).Float64()
	return rounded
}
