// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists the files of a bulk load in the order they are applied.
//
//	imports:
//	  - model: category
//	    path: category.csv
//	  - table: title_genres
//	    path: genre_title.csv
type Manifest struct {
	Imports []Job `yaml:"imports"`
}

// ParseManifest decodes a manifest. Relative paths are resolved against baseDir.
func ParseManifest(r io.Reader, baseDir string) ([]Job, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil {
		return nil, fmt.Errorf("importer: decode manifest: %w", err)
	}
	if len(manifest.Imports) == 0 {
		return nil, fmt.Errorf("%w: manifest lists no imports", ErrInvalidPlan)
	}

	for i := range manifest.Imports {
		job := &manifest.Imports[i]
		if err := job.validate(); err != nil {
			return nil, fmt.Errorf("imports[%d]: %w", i, err)
		}
		if !filepath.IsAbs(job.Path) {
			job.Path = filepath.Join(baseDir, job.Path)
		}
	}
	return manifest.Imports, nil
}

// LoadManifest reads a manifest file; paths inside it are relative to the file.
func LoadManifest(path string) ([]Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open manifest: %w", err)
	}
	defer file.Close()

	return ParseManifest(file, filepath.Dir(path))
}
