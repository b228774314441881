package tools

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ecopia-map/geo_reprojector/internal/reproject"
)

var geoJSONExtensions = map[string]bool{
	".geojson": true,
	".json":    true,
}

type FileFinder interface {
	GetGeoJSONFilesToProcess(opts *reproject.ReprojectOptions) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetGeoJSONFilesToProcess(opts *reproject.ReprojectOptions) ([]string, error) {
	// If folder processing is not enabled then the document is given by -input flag, otherwise look for documents in
	// -input folder eventually excluding nested folders if Recursive flag is disabled
	if !opts.ConvertOptions.FolderProcessing {
		return []string{opts.ConvertOptions.Input}, nil
	}

	return f.getFilesFromInputFolder(opts.ConvertOptions)
}

func (f *StandardFileFinder) getFilesFromInputFolder(opts *reproject.ConvertOptions) ([]string, error) {
	var files = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, err
	}
	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if !opts.Recursive && !os.SameFile(info, baseInfo) {
					return filepath.SkipDir
				}
				return nil
			}
			if geoJSONExtensions[strings.ToLower(filepath.Ext(info.Name()))] {
				files = append(files, path)
			}
			return nil
		},
	)

	if err != nil {
		return nil, err
	}

	return files, nil
}
