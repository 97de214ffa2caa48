// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"errors"
	"fmt"
)

// Job is one file to import. Exactly one of Model and Table is set.
type Job struct {
	Model string `yaml:"model"`
	Table string `yaml:"table"`
	Path  string `yaml:"path"`
}

// ErrInvalidPlan is returned for an inconsistent set of jobs.
var ErrInvalidPlan = errors.New("importer: inconsistent import parameters")

func (job Job) validate() error {
	switch {
	case job.Path == "":
		return fmt.Errorf("%w: missing path", ErrInvalidPlan)
	case (job.Model == "") == (job.Table == ""):
		return fmt.Errorf("%w: %s needs exactly one of model or table", ErrInvalidPlan, job.Path)
	}
	return nil
}

/*
PlanFromFlags pairs entity or table names with file paths.

Exactly one of models and tables must be given, with as many paths as names.
*/
func PlanFromFlags(models, tables, paths []string) ([]Job, error) {
	if (len(models) == 0) == (len(tables) == 0) {
		return nil, fmt.Errorf("%w: give either models or tables", ErrInvalidPlan)
	}

	names, kind := models, "models"
	if len(tables) > 0 {
		names, kind = tables, "tables"
	}
	if len(names) != len(paths) {
		return nil, fmt.Errorf("%w: number of paths and %s do not match", ErrInvalidPlan, kind)
	}

	jobs := make([]Job, len(names))
	for i, name := range names {
		jobs[i] = Job{Path: paths[i]}
		if kind == "models" {
			jobs[i].Model = name
		} else {
			jobs[i].Table = name
		}
	}
	return jobs, nil
}
