package builtin_coordinate_converter

import (
	"errors"
	"fmt"
	"math"

	"github.com/ecopia-map/geo_reprojector/internal/converters"
)

const (
	deg2Rad = math.Pi / 180.0
	rad2Deg = 180.0 / math.Pi

	// WGS84 ellipsoid
	semiMajorAxis = 6378137.0
	flattening    = 1 / 298.257223563

	// Latitude limit of the square web mercator world
	webMercatorMaxLatitude = 85.05112877980659
	// Mercator diverges at the poles, beyond this the northing is meaningless
	worldMercatorMaxLatitude = 89.5
)

var eccentricity = math.Sqrt(2*flattening - flattening*flattening)

var errOutOfDomain = errors.New("coordinate outside projection domain")

// Maps coordinates of one reference system to and from WGS84 longitude/latitude in degrees
type projection interface {
	toWGS84(x, y float64) (lon, lat float64, err error)
	fromWGS84(lon, lat float64) (x, y float64, err error)
	srid() int
}

func projectionForSrid(srid int) (projection, bool) {
	switch srid {
	case converters.Wgs84Srid:
		return wgs84Identity{}, true
	case converters.WebMercatorSrid:
		return webMercator{}, true
	case converters.WorldMercatorSrid:
		return worldMercator{}, true
	default:
		return nil, false
	}
}

// No-op projection for data already in EPSG:4326
type wgs84Identity struct{}

func (wgs84Identity) toWGS84(x, y float64) (float64, float64, error) {
	if err := checkGeographic(x, y); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (wgs84Identity) fromWGS84(lon, lat float64) (float64, float64, error) {
	if err := checkGeographic(lon, lat); err != nil {
		return 0, 0, err
	}
	return lon, lat, nil
}

func (wgs84Identity) srid() int { return converters.Wgs84Srid }

// Spherical mercator on the WGS84 semi-major axis, EPSG:3857
type webMercator struct{}

func (webMercator) fromWGS84(lon, lat float64) (float64, float64, error) {
	if err := checkGeographic(lon, lat); err != nil {
		return 0, 0, err
	}
	if math.Abs(lat) > webMercatorMaxLatitude {
		return 0, 0, fmt.Errorf("%w: latitude %v beyond web mercator limit", errOutOfDomain, lat)
	}
	x := semiMajorAxis * lon * deg2Rad
	y := semiMajorAxis * math.Log(math.Tan(math.Pi/4+lat*deg2Rad/2))
	return x, y, nil
}

func (webMercator) toWGS84(x, y float64) (float64, float64, error) {
	limit := math.Pi * semiMajorAxis
	if math.Abs(x) > limit*(1+1e-9) || math.Abs(y) > limit*(1+1e-9) {
		return 0, 0, fmt.Errorf("%w: (%v, %v) beyond web mercator extent", errOutOfDomain, x, y)
	}
	lon := x / semiMajorAxis * rad2Deg
	lat := (2*math.Atan(math.Exp(y/semiMajorAxis)) - math.Pi/2) * rad2Deg
	return lon, lat, nil
}

func (webMercator) srid() int { return converters.WebMercatorSrid }

// Ellipsoidal mercator, EPSG:3395
type worldMercator struct{}

func (worldMercator) fromWGS84(lon, lat float64) (float64, float64, error) {
	if err := checkGeographic(lon, lat); err != nil {
		return 0, 0, err
	}
	if math.Abs(lat) > worldMercatorMaxLatitude {
		return 0, 0, fmt.Errorf("%w: latitude %v beyond world mercator limit", errOutOfDomain, lat)
	}
	phi := lat * deg2Rad
	esin := eccentricity * math.Sin(phi)
	x := semiMajorAxis * lon * deg2Rad
	y := semiMajorAxis * math.Log(math.Tan(math.Pi/4+phi/2)*math.Pow((1-esin)/(1+esin), eccentricity/2))
	return x, y, nil
}

func (worldMercator) toWGS84(x, y float64) (float64, float64, error) {
	if math.Abs(x) > math.Pi*semiMajorAxis*(1+1e-9) {
		return 0, 0, fmt.Errorf("%w: easting %v beyond world mercator extent", errOutOfDomain, x)
	}
	t := math.Exp(-y / semiMajorAxis)
	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 15; i++ {
		esin := eccentricity * math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-esin)/(1+esin), eccentricity/2))
		if math.Abs(next-phi) < 1e-14 {
			phi = next
			break
		}
		phi = next
	}
	return x / semiMajorAxis * rad2Deg, phi * rad2Deg, nil
}

func (worldMercator) srid() int { return converters.WorldMercatorSrid }

func checkGeographic(lon, lat float64) error {
	if math.Abs(lon) > 180 || math.Abs(lat) > 90 {
		return fmt.Errorf("%w: (%v, %v) is not a valid longitude/latitude", errOutOfDomain, lon, lat)
	}
	return nil
}
