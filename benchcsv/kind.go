// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// A Kind identifies which harness output a CSV file holds.
type Kind int

const (
	// Sequential files hold baseline runs of the sequential kernel.
	Sequential Kind = iota
	// Parallel files hold timing runs of the parallel kernel.
	Parallel
	// ParallelPerf files hold performance-counter runs of the
	// parallel kernel.
	ParallelPerf
)

// Kinds lists every Kind in suffix-matching order. ParallelPerf comes
// before Parallel so that the longer suffix wins.
var Kinds = []Kind{ParallelPerf, Parallel, Sequential}

func (k Kind) String() string {
	switch k {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	case ParallelPerf:
		return "parallel_perf"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Suffix returns the file name suffix that identifies files of kind k.
func (k Kind) Suffix() string {
	return "_" + k.String() + ".csv"
}

// Required returns the columns a file of kind k must contain.
func (k Kind) Required() []string {
	switch k {
	case Sequential:
		return []string{ColTime}
	case Parallel:
		return []string{ColSchedule, ColThreads, ColChunk, ColTime}
	case ParallelPerf:
		return []string{ColSchedule, ColThreads, ColCacheMiss, ColCacheRef}
	}
	return nil
}

// Mode returns the execution mode of records read from files of kind k.
func (k Kind) Mode() Mode {
	if k == Sequential {
		return ModeSequential
	}
	return ModeParallel
}

// ParseName splits a results file name into its matrix identifier and
// Kind. Only the base name of path is considered. Two files that
// differ only by their mode suffix yield the same matrix.
func ParseName(path string) (matrix string, kind Kind, ok bool) {
	base := filepath.Base(path)
	for _, k := range Kinds {
		if m, found := strings.CutSuffix(base, k.Suffix()); found && m != "" {
			return m, k, true
		}
	}
	return "", 0, false
}

// A File describes one input file. Files are supplied by the caller;
// this package never scans directories itself.
type File struct {
	Path string
	Kind Kind

	// Matrix overrides the matrix identifier. If empty, it is
	// derived from Path by stripping Kind's suffix.
	Matrix string
}

// NewFile returns a File for path, deriving its Kind and matrix from
// the file name.
func NewFile(path string) (File, error) {
	m, k, ok := ParseName(path)
	if !ok {
		return File{}, fmt.Errorf("%s: file name has no recognized suffix (%s, %s, %s)", path, Sequential.Suffix(), Parallel.Suffix(), ParallelPerf.Suffix())
	}
	return File{Path: path, Kind: k, Matrix: m}, nil
}

// MatrixName returns f's matrix identifier.
func (f File) MatrixName() string {
	if f.Matrix != "" {
		return f.Matrix
	}
	base := filepath.Base(f.Path)
	if m, ok := strings.CutSuffix(base, f.Kind.Suffix()); ok && m != "" {
		return m
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
