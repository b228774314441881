package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		kind    DocumentKind
		wantErr bool
	}{
		{
			name: "feature collection",
			data: `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"name":"a"}}]}`,
			kind: DocumentFeatureCollection,
		},
		{
			name: "feature",
			data: `{"type":"Feature","id":7,"geometry":null,"properties":{}}`,
			kind: DocumentFeature,
		},
		{
			name: "geometry",
			data: `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`,
			kind: DocumentGeometry,
		},
		{name: "missing type", data: `{"coordinates":[1,2]}`, wantErr: true},
		{name: "not json", data: `POINT (1 2)`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if doc.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", doc.Kind, tt.kind)
			}
		})
	}
}

func TestParseDocument_Content(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2,3]},"properties":{"name":"a"}},
		{"type":"Feature","geometry":null,"properties":null}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	features := doc.Collection.Features
	if len(features) != 2 {
		t.Fatalf("got %d features", len(features))
	}
	if features[0].Geometry.Type != geojson.GeometryPoint || len(features[0].Geometry.Point) != 3 {
		t.Errorf("first geometry = %+v", features[0].Geometry)
	}
	if features[0].Properties["name"] != "a" {
		t.Errorf("properties = %v", features[0].Properties)
	}
	if features[1].Geometry != nil {
		t.Errorf("null geometry decoded as %+v", features[1].Geometry)
	}
}

func TestWriteAndReadDocument(t *testing.T) {
	dir := t.TempDir()

	doc := &Document{
		Kind:    DocumentFeature,
		Feature: geojson.NewFeature(geojson.NewLineStringGeometry([][]float64{{0, 0}, {1, 1}})),
	}
	doc.Feature.SetProperty("name", "road")

	filePath, err := WriteDocument(filepath.Join(dir, "out"), "roads", doc, NewGeoJSONEncoder())
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(filePath) != "roads.geojson" {
		t.Errorf("written to %s", filePath)
	}
	if _, err := os.Stat(filePath); err != nil {
		t.Fatal(err)
	}

	back, err := ReadDocumentFile(filePath)
	if err != nil {
		t.Fatal(err)
	}
	if back.Kind != DocumentFeature || back.Feature.Properties["name"] != "road" {
		t.Errorf("read back %+v", back.Feature)
	}
	if len(back.Feature.Geometry.LineString) != 2 {
		t.Errorf("geometry = %+v", back.Feature.Geometry)
	}
}

func TestReadDocumentFile_Missing(t *testing.T) {
	if _, err := ReadDocumentFile(filepath.Join(t.TempDir(), "nope.geojson")); err == nil {
		t.Error("expected error")
	}
}

func TestParseDocument_KeptMembers(t *testing.T) {
	data := `{"type":"FeatureCollection","name":"roads","features":[
		{"type":"Feature","id":"r1","title":"main","bbox":[1,2,1,2],
		 "crs":{"type":"name","properties":{"name":"EPSG:4326"}},
		 "geometry":{"type":"Point","coordinates":[1,2]},"properties":{"lanes":2}}]}`

	doc, err := ParseDocument([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	f := doc.Collection.Features[0]
	if f.ID != "r1" || f.Properties["lanes"] != 2.0 || len(f.BoundingBox) != 4 || f.CRS == nil {
		t.Errorf("feature = %+v", f)
	}

	out, err := NewGeoJSONEncoder().Encode(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, member := range []string{`"name":"roads"`, `"title"`} {
		if strings.Contains(string(out), member) {
			t.Errorf("foreign member %s written back, the model has no place for it", member)
		}
	}
}
