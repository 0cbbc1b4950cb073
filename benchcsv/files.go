// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// A Dataset holds every record for one matrix, partitioned by the kind
// of file each record came from.
type Dataset struct {
	Matrix string

	Sequential []Record
	Parallel   []Record
	Perf       []Record
}

// Records returns the records of d that came from files of kind k.
func (d *Dataset) Records(k Kind) []Record {
	switch k {
	case Sequential:
		return d.Sequential
	case Parallel:
		return d.Parallel
	case ParallelPerf:
		return d.Perf
	}
	return nil
}

// Datasets maps matrix identifiers to their Dataset. Matrices are kept
// in the order they were first added.
type Datasets struct {
	order []string
	m     map[string]*Dataset
}

// NewDatasets returns an empty Datasets.
func NewDatasets() *Datasets {
	return &Datasets{m: make(map[string]*Dataset)}
}

// Add appends recs to the datasets of their matrices.
func (ds *Datasets) Add(recs ...Record) {
	for _, rec := range recs {
		d := ds.m[rec.Matrix]
		if d == nil {
			d = &Dataset{Matrix: rec.Matrix}
			ds.m[rec.Matrix] = d
			ds.order = append(ds.order, rec.Matrix)
		}
		switch rec.Kind {
		case Sequential:
			d.Sequential = append(d.Sequential, rec)
		case Parallel:
			d.Parallel = append(d.Parallel, rec)
		case ParallelPerf:
			d.Perf = append(d.Perf, rec)
		}
	}
}

// touch registers matrix without adding records, so that a file with a
// header but no rows still fixes its matrix's position.
func (ds *Datasets) touch(matrix string) {
	if _, ok := ds.m[matrix]; !ok {
		ds.m[matrix] = &Dataset{Matrix: matrix}
		ds.order = append(ds.order, matrix)
	}
}

// Matrices returns the matrix identifiers in discovery order.
func (ds *Datasets) Matrices() []string {
	return ds.order
}

// Get returns the Dataset for matrix, or nil.
func (ds *Datasets) Get(matrix string) *Dataset {
	return ds.m[matrix]
}

// Len returns the number of matrices.
func (ds *Datasets) Len() int {
	return len(ds.order)
}

// A LoadError reports that a whole file could not be loaded. Err is a
// *SchemaError, a *SyntaxError, or an I/O error.
type LoadError struct {
	File File
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.File.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads every record of f. It fails on the first structural
// or syntax error; no partial result is returned in that case.
func LoadFile(f File) ([]Record, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var recs []Record
	r := NewReader(file, f.Path, f.Kind, f.MatrixName())
	for r.Scan() {
		recs = append(recs, *r.Record())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// Options configures Load.
type Options struct {
	// Parallel is the maximum number of files read concurrently.
	// Values < 2 read files one at a time.
	Parallel int
}

// Load reads files into Datasets. A file that fails to load is
// reported as a *LoadError and skipped; the remaining files are still
// loaded. Matrices appear in the order of their first file in files,
// regardless of Options.Parallel.
func Load(ctx context.Context, files []File, opts Options) (*Datasets, []error) {
	type slot struct {
		recs []Record
		err  error
	}
	slots := make([]slot, len(files))

	if opts.Parallel < 2 {
		for i, f := range files {
			if err := ctx.Err(); err != nil {
				slots[i].err = err
				continue
			}
			slots[i].recs, slots[i].err = LoadFile(f)
		}
	} else {
		// Each goroutine writes only its own slot.
		var g errgroup.Group
		g.SetLimit(opts.Parallel)
		for i, f := range files {
			i, f := i, f
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					slots[i].err = err
					return nil
				}
				slots[i].recs, slots[i].err = LoadFile(f)
				return nil
			})
		}
		g.Wait()
	}

	ds := NewDatasets()
	var errs []error
	for i, s := range slots {
		if s.err != nil {
			errs = append(errs, &LoadError{files[i], s.err})
			continue
		}
		ds.touch(files[i].MatrixName())
		ds.Add(s.recs...)
	}
	return ds, errs
}
