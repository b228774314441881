package converters

import (
	"strconv"
	"strings"
)

const (
	Wgs84Srid       = 4326
	WebMercatorSrid = 3857
	// Cartesian 2D metric reference system on the WGS84 ellipsoid
	WorldMercatorSrid = 3395
)

// Codes that are registered under another name by EPSG
var sridAliases = map[int]int{
	900913: WebMercatorSrid,
	3785:   WebMercatorSrid,
	102100: WebMercatorSrid,
	102113: WebMercatorSrid,
}

// Parses an authority:code identifier into an EPSG srid. Accepted forms are "EPSG:3857",
// "epsg:3857", "urn:ogc:def:crs:EPSG::3857", "urn:ogc:def:crs:OGC:1.3:CRS84", "CRS:84" and a bare
// code "3857". Returns false for anything else, including proj definition strings.
func ParseSrid(identifier string) (int, bool) {
	id := strings.TrimSpace(identifier)
	upper := strings.ToUpper(id)

	switch upper {
	case "CRS:84", "CRS84", "OGC:CRS84", "URN:OGC:DEF:CRS:OGC:1.3:CRS84", "WGS84":
		return Wgs84Srid, true
	}

	code := id
	switch {
	case strings.HasPrefix(upper, "URN:OGC:DEF:CRS:EPSG:"):
		code = id[strings.LastIndex(id, ":")+1:]
	case strings.HasPrefix(upper, "EPSG:"):
		code = id[len("EPSG:"):]
	}

	srid, err := strconv.Atoi(code)
	if err != nil || srid <= 0 {
		return 0, false
	}
	if alias, ok := sridAliases[srid]; ok {
		return alias, true
	}
	return srid, true
}

// Formats a srid as the canonical "EPSG:<code>" identifier
func FormatSrid(srid int) string {
	return "EPSG:" + strconv.Itoa(srid)
}
