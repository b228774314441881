package io

import (
	"fmt"
	"os"
	"path"

	"github.com/ecopia-map/geo_reprojector/tools"
)

// Encodes a document in some output format
type DocumentEncoder interface {
	Encode(doc *Document) ([]byte, error)
	Extension() string
}

type GeoJSONEncoder struct{}

func NewGeoJSONEncoder() *GeoJSONEncoder {
	return &GeoJSONEncoder{}
}

func (e *GeoJSONEncoder) Encode(doc *Document) ([]byte, error) {
	switch doc.Kind {
	case DocumentFeatureCollection:
		return doc.Collection.MarshalJSON()
	case DocumentFeature:
		return doc.Feature.MarshalJSON()
	case DocumentGeometry:
		return doc.Geometry.MarshalJSON()
	}
	return nil, fmt.Errorf("cannot encode document of kind %s", doc.Kind)
}

func (e *GeoJSONEncoder) Extension() string {
	return ".geojson"
}

// Encodes doc and writes it to folder/name, adding the encoder extension. Returns the written path.
func WriteDocument(folder string, name string, doc *Document, encoder DocumentEncoder) (string, error) {
	if err := tools.CreateDirectoryIfDoesNotExist(folder); err != nil {
		return "", err
	}

	content, err := encoder.Encode(doc)
	if err != nil {
		return "", err
	}

	filePath := path.Join(folder, name+encoder.Extension())
	if err := os.WriteFile(filePath, content, 0666); err != nil {
		return "", err
	}
	return filePath, nil
}
