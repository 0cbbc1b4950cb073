// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// A Reader reads records of a single Kind from a CSV stream.
//
// To minimize allocation, a Reader reuses the Record returned by
// Record; a caller should copy anything it needs to retain.
type Reader struct {
	cr     *csv.Reader
	kind   Kind
	matrix string
	file   string

	// cols maps column name to field index. It is nil until the
	// header has been read.
	cols map[string]int

	rec Record
	err error
}

// A SchemaError reports that a file lacks required columns. It is
// fatal for the file.
type SchemaError struct {
	FileName string
	Kind     Kind
	Missing  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s file is missing required column(s) %s", e.FileName, e.Kind, strings.Join(e.Missing, ", "))
}

// A SyntaxError represents a malformed cell or an invalid record on a
// particular line of a results file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader constructs a reader for the records of a file of the given
// kind. matrix is stamped on every record. fileName is used in error
// messages and in Record.Pos.
func NewReader(r io.Reader, fileName string, kind Kind, matrix string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.ReuseRecord = true
	return &Reader{cr: cr, kind: kind, matrix: matrix, file: fileName}
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Record method to get the
// record. If Scan reaches EOF or an error occurs, it returns false, in
// which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.cols == nil {
		if r.err = r.readHeader(); r.err != nil {
			return false
		}
	}
	fields, err := r.cr.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		r.err = r.csvError(err)
		return false
	}
	line, _ := r.cr.FieldPos(0)
	if r.err = r.parseRow(fields, line); r.err != nil {
		return false
	}
	return true
}

// Record returns the record that was just read by Scan.
func (r *Reader) Record() *Record {
	return &r.rec
}

// Err returns the first error encountered by Scan, or nil if Scan
// stopped at the end of the input.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readHeader() error {
	header, err := r.cr.Read()
	if err != nil && err != io.EOF {
		return r.csvError(err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	r.cols = make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := r.cols[name]; !dup && name != "" {
			r.cols[name] = i
		}
	}
	var missing []string
	for _, name := range r.kind.Required() {
		if _, ok := r.cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{r.file, r.kind, missing}
	}
	return nil
}

func (r *Reader) csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &SyntaxError{r.file, pe.Line, pe.Err.Error()}
	}
	return fmt.Errorf("%s: %w", r.file, err)
}

// cell returns the trimmed value of column name, or "" if the column
// is absent from the file or from this row.
func cell(fields []string, cols map[string]int, name string) (string, bool) {
	i, ok := cols[name]
	if !ok || i >= len(fields) {
		return "", false
	}
	v := strings.TrimSpace(fields[i])
	switch strings.ToLower(v) {
	case "", "na", "nan", "null", "none", "-":
		return "", false
	}
	return v, true
}

func (r *Reader) parseRow(fields []string, line int) error {
	rec := &r.rec
	*rec = Record{Matrix: r.matrix, Kind: r.kind, Threads: 1, fileName: r.file, line: line}
	bad := func(format string, args ...interface{}) error {
		return &SyntaxError{r.file, line, fmt.Sprintf(format, args...)}
	}
	required := func(name string) (string, error) {
		v, ok := cell(fields, r.cols, name)
		if !ok {
			return "", bad("missing value for %s", name)
		}
		return v, nil
	}
	float := func(name string, v string) (float64, error) {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, bad("%s: invalid number %q", name, v)
		}
		return x, nil
	}
	count := func(name string, v string) (int64, error) {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// perf sometimes prints counters in float notation.
			f, ferr := strconv.ParseFloat(v, 64)
			if ferr != nil || f != math.Trunc(f) {
				return 0, bad("%s: invalid count %q", name, v)
			}
			// float64(math.MaxInt64) rounds up to 2^63.
			if f >= math.MaxInt64 || f < math.MinInt64 {
				return 0, bad("%s: count %q out of range", name, v)
			}
			x = int64(f)
		}
		if x < 0 {
			return 0, bad("%s: negative count %d", name, x)
		}
		return x, nil
	}

	if r.kind != Sequential {
		v, err := required(ColSchedule)
		if err != nil {
			return err
		}
		rec.Schedule = strings.ToLower(v)

		if v, err = required(ColThreads); err != nil {
			return err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return bad("threads: invalid integer %q", v)
		}
		if n < 1 {
			return bad("threads: must be >= 1, got %d", n)
		}
		rec.Threads = n
	}

	if v, ok := cell(fields, r.cols, ColChunk); ok && r.kind != Sequential {
		n, err := strconv.Atoi(v)
		if err != nil {
			return bad("chunk: invalid integer %q", v)
		}
		if n < 0 {
			return bad("chunk: must be positive, got %d", n)
		}
		// OpenMP treats chunk 0 as the schedule's default.
		rec.Chunk = n
	}

	if v, ok := cell(fields, r.cols, ColTime); ok {
		t, err := float(ColTime, v)
		if err != nil {
			return err
		}
		if t <= 0 {
			return bad("time_ms: must be > 0, got %v", t)
		}
		rec.TimeMS, rec.HasTime = t, true
	} else if r.kind != ParallelPerf {
		return bad("missing value for %s", ColTime)
	}

	for _, opt := range []struct {
		name string
		dst  *float64
		has  *bool
	}{
		{ColBandwidth, &rec.BW, &rec.HasBW},
		{ColGFLOPS, &rec.GFLOPS, &rec.HasGFLOPS},
		{ColAI, &rec.AI, &rec.HasAI},
	} {
		v, ok := cell(fields, r.cols, opt.name)
		if !ok {
			continue
		}
		x, err := float(opt.name, v)
		if err != nil {
			return err
		}
		if x < 0 {
			return bad("%s: must be >= 0, got %v", opt.name, x)
		}
		*opt.dst, *opt.has = x, true
	}

	missV, hasMiss := cell(fields, r.cols, ColCacheMiss)
	refV, hasRef := cell(fields, r.cols, ColCacheRef)
	switch {
	case hasMiss && hasRef:
		miss, err := count(ColCacheMiss, missV)
		if err != nil {
			return err
		}
		ref, err := count(ColCacheRef, refV)
		if err != nil {
			return err
		}
		if miss > ref {
			return bad("cache_miss %d exceeds cache_ref %d", miss, ref)
		}
		rec.CacheMiss, rec.CacheRef, rec.HasCache = miss, ref, true
	case hasMiss != hasRef:
		return bad("cache_miss and cache_ref must be given together")
	case r.kind == ParallelPerf:
		return bad("missing value for %s", ColCacheMiss)
	}
	return nil
}
