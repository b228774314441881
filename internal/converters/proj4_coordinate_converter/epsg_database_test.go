package proj4_coordinate_converter

import "testing"

func TestParseEpsgDatabase(t *testing.T) {
	data := `# comment
<4326> +proj=longlat +datum=WGS84 +no_defs <>

<abc> +proj=merc <>
<3857> +proj=merc +a=6378137 +b=6378137 <>
<1234>  <>
garbage
`
	database := parseEpsgDatabase(data)
	if len(database) != 2 {
		t.Fatalf("expected 2 definitions, got %d: %v", len(database), database)
	}
	if database[4326] != "+proj=longlat +datum=WGS84 +no_defs" {
		t.Errorf("unexpected definition %q", database[4326])
	}
	if database[3857] != "+proj=merc +a=6378137 +b=6378137" {
		t.Errorf("unexpected definition %q", database[3857])
	}
}

func TestEmbeddedEpsgDatabase(t *testing.T) {
	for _, code := range []int{4326, 3857, 3395, 25832} {
		if _, ok := getEpsgDatabase()[code]; !ok {
			t.Errorf("embedded database misses EPSG:%d", code)
		}
	}
}

func TestResolveDefinition(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
		wantErr    bool
	}{
		{"EPSG:4326", "+proj=longlat +datum=WGS84 +no_defs", false},
		{"urn:ogc:def:crs:EPSG::4326", "+proj=longlat +datum=WGS84 +no_defs", false},
		{"+proj=utm +zone=31 +datum=WGS84", "+proj=utm +zone=31 +datum=WGS84", false},
		{"EPSG:31467", "+init=epsg:31467", false},
		{"Mercator", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			got, err := resolveDefinition(tt.identifier)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveDefinition = %q, want %q", got, tt.want)
			}
		})
	}
}
