// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads the CSV files produced by the sparse
// matrix-vector benchmark harness.
//
// The harness writes one file per matrix and mode:
//
//	<matrix>_sequential.csv     time_ms
//	<matrix>_parallel.csv       schedule,threads,chunk,time_ms[,gflops,bw_gbs,ai]
//	<matrix>_parallel_perf.csv  schedule,threads,cache_miss,cache_ref
//
// A file missing a required column fails to load with a *SchemaError.
// A row that cannot be parsed, or that violates a record invariant,
// fails its file with a *SyntaxError. Extra columns are ignored.
//
// The reader is modeled on bufio.Scanner: call Scan until it returns
// false, then check Err.
package benchcsv

// Column names understood by the reader.
const (
	ColSchedule  = "schedule"
	ColThreads   = "threads"
	ColChunk     = "chunk"
	ColTime      = "time_ms"
	ColBandwidth = "bw_gbs"
	ColGFLOPS    = "gflops"
	ColAI        = "ai"
	ColCacheMiss = "cache_miss"
	ColCacheRef  = "cache_ref"
)

// A Mode is the execution mode of a benchmark run.
type Mode int

const (
	ModeSequential Mode = iota
	ModeParallel
)

func (m Mode) String() string {
	if m == ModeSequential {
		return "sequential"
	}
	return "parallel"
}

// A Record is a single measurement row.
//
// Optional measurements carry a Has flag. Chunk is 0 when the row was
// run without an explicit chunk size.
type Record struct {
	Matrix   string
	Kind     Kind
	Schedule string // empty for sequential records
	Threads  int    // 1 for sequential records
	Chunk    int

	TimeMS  float64 // > 0 when HasTime
	HasTime bool

	BW    float64 // GB/s
	HasBW bool

	GFLOPS    float64
	HasGFLOPS bool

	AI    float64 // arithmetic intensity, flops/byte
	HasAI bool

	CacheMiss, CacheRef int64 // CacheMiss <= CacheRef when HasCache
	HasCache            bool

	fileName string
	line     int
}

// Mode returns the execution mode of r.
func (r *Record) Mode() Mode {
	return r.Kind.Mode()
}

// HasChunk reports whether r was run with an explicit chunk size.
func (r *Record) HasChunk() bool {
	return r.Chunk > 0
}

// Pos returns the file name and line number r was read from. For
// Records that were not read by a Reader, it returns "", 0.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}
