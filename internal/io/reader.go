package io

import (
	"encoding/json"
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
)

type DocumentKind int

const (
	DocumentFeatureCollection DocumentKind = iota
	DocumentFeature
	DocumentGeometry
)

func (k DocumentKind) String() string {
	switch k {
	case DocumentFeatureCollection:
		return "FeatureCollection"
	case DocumentFeature:
		return "Feature"
	case DocumentGeometry:
		return "Geometry"
	}
	return "unknown"
}

// GeoJSON document. Exactly one of Collection, Feature and Geometry is set, according to Kind.
type Document struct {
	Kind       DocumentKind
	Collection *geojson.FeatureCollection
	Feature    *geojson.Feature
	Geometry   *geojson.Geometry
}

// Reads and decodes the GeoJSON document stored at filePath
func ReadDocumentFile(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return doc, nil
}

// Decodes a GeoJSON document, dispatching on its top level "type" member. Members outside the
// go.geojson model (foreign members such as a collection "name") are not kept; id, properties,
// bbox and crs are.
func ParseDocument(data []byte) (*Document, error) {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON document: %w", err)
	}

	switch header.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("invalid feature collection: %w", err)
		}
		return &Document{Kind: DocumentFeatureCollection, Collection: fc}, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("invalid feature: %w", err)
		}
		return &Document{Kind: DocumentFeature, Feature: f}, nil
	case "":
		return nil, fmt.Errorf("invalid GeoJSON document: missing type member")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("invalid geometry: %w", err)
		}
		return &Document{Kind: DocumentGeometry, Geometry: g}, nil
	}
}
