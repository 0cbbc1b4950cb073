// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func parseAll(t *testing.T, kind Kind, data string) ([]Record, error) {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test.csv", kind, "m")
	var out []Record
	for r.Scan() {
		rec := *r.Record()
		// Wipe position information for comparisons.
		rec.fileName, rec.line = "", 0
		out = append(out, rec)
	}
	return out, r.Err()
}

func TestReaderParallel(t *testing.T) {
	const data = `schedule,threads,chunk,time_ms,gflops,bw_gbs,ai
static,4,16,2.5,1.1,3.25,0.1
Dynamic, 8 ,,1.25,,,
guided,2,0,4,NA,1.0,
`
	got, err := parseAll(t, Parallel, data)
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{
		{Matrix: "m", Kind: Parallel, Schedule: "static", Threads: 4, Chunk: 16, TimeMS: 2.5, HasTime: true,
			GFLOPS: 1.1, HasGFLOPS: true, BW: 3.25, HasBW: true, AI: 0.1, HasAI: true},
		{Matrix: "m", Kind: Parallel, Schedule: "dynamic", Threads: 8, TimeMS: 1.25, HasTime: true},
		{Matrix: "m", Kind: Parallel, Schedule: "guided", Threads: 2, TimeMS: 4, HasTime: true, BW: 1, HasBW: true},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Record{})); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if got[1].HasChunk() || !got[0].HasChunk() {
		t.Errorf("HasChunk: got %v/%v, want true/false", got[0].HasChunk(), got[1].HasChunk())
	}
}

func TestReaderSequentialIgnoresExtraColumns(t *testing.T) {
	got, err := parseAll(t, Sequential, "run,time_ms,threads,schedule\n0,100,7,static\n1,101,7,static\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	for _, rec := range got {
		if rec.Threads != 1 || rec.Schedule != "" || rec.Mode() != ModeSequential {
			t.Errorf("sequential record %+v: want threads=1, no schedule", rec)
		}
	}
}

func TestReaderPerf(t *testing.T) {
	got, err := parseAll(t, ParallelPerf, "schedule,threads,cache_miss,cache_ref\nstatic,2,10,100\nstatic,2,0,0\nguided,4,1.5e3,2000\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{
		{Matrix: "m", Kind: ParallelPerf, Schedule: "static", Threads: 2, CacheMiss: 10, CacheRef: 100, HasCache: true},
		{Matrix: "m", Kind: ParallelPerf, Schedule: "static", Threads: 2, HasCache: true},
		{Matrix: "m", Kind: ParallelPerf, Schedule: "guided", Threads: 4, CacheMiss: 1500, CacheRef: 2000, HasCache: true},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Record{})); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReaderSchemaError(t *testing.T) {
	for _, test := range []struct {
		kind    Kind
		data    string
		missing []string
	}{
		{Parallel, "schedule,threads,time_ms\nstatic,1,1\n", []string{"chunk"}},
		{Parallel, "", []string{"schedule", "threads", "chunk", "time_ms"}},
		{Sequential, "run,ms\n1,2\n", []string{"time_ms"}},
		{ParallelPerf, "schedule,threads,cache_miss\nstatic,1,1\n", []string{"cache_ref"}},
	} {
		_, err := parseAll(t, test.kind, test.data)
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Errorf("%s %q: got error %v, want *SchemaError", test.kind, test.data, err)
			continue
		}
		if diff := cmp.Diff(test.missing, se.Missing); diff != "" {
			t.Errorf("%s %q: missing columns (-want +got):\n%s", test.kind, test.data, diff)
		}
		if !strings.Contains(se.Error(), "test.csv") {
			t.Errorf("error %q does not name the file", se)
		}
	}
}

func TestReaderSyntaxError(t *testing.T) {
	const header = "schedule,threads,chunk,time_ms,bw_gbs,cache_miss,cache_ref\n"
	for _, test := range []struct {
		row  string
		want string
	}{
		{"static,0,1,1,,,", "test.csv:2: threads: must be >= 1, got 0"},
		{"static,x,1,1,,,", `test.csv:2: threads: invalid integer "x"`},
		{"static,1,1,0,,,", "test.csv:2: time_ms: must be > 0, got 0"},
		{"static,1,1,,,,", "test.csv:2: missing value for time_ms"},
		{"static,1,-4,1,,,", "test.csv:2: chunk: must be positive, got -4"},
		{"static,1,1,1,-2,,", "test.csv:2: bw_gbs: must be >= 0, got -2"},
		{"static,1,1,1,,5,", "test.csv:2: cache_miss and cache_ref must be given together"},
		{"static,1,1,1,,5,4", "test.csv:2: cache_miss 5 exceeds cache_ref 4"},
		{",1,1,1,,,", "test.csv:2: missing value for schedule"},
		{"static,1,1,1,,5,9.223372036854775807e18", `test.csv:2: cache_ref: count "9.223372036854775807e18" out of range`},
		{"static,1,1,1,,5,1e30", `test.csv:2: cache_ref: count "1e30" out of range`},
	} {
		_, err := parseAll(t, Parallel, header+test.row+"\n")
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: got error %v, want *SyntaxError", test.row, err)
			continue
		}
		if se.Error() != test.want {
			t.Errorf("%q: got %q, want %q", test.row, se.Error(), test.want)
		}
	}
}

func TestParseName(t *testing.T) {
	for _, test := range []struct {
		path   string
		matrix string
		kind   Kind
		ok     bool
	}{
		{"results/cage4_parallel.csv", "cage4", Parallel, true},
		{"cage4_sequential.csv", "cage4", Sequential, true},
		{"/x/web_Google_parallel_perf.csv", "web_Google", ParallelPerf, true},
		{"_parallel.csv", "", 0, false},
		{"cage4.csv", "", 0, false},
	} {
		m, k, ok := ParseName(test.path)
		if m != test.matrix || k != test.kind || ok != test.ok {
			t.Errorf("ParseName(%q) = %q, %v, %v; want %q, %v, %v", test.path, m, k, ok, test.matrix, test.kind, test.ok)
		}
	}
}

func TestReaderByteOrderMark(t *testing.T) {
	got, err := parseAll(t, Sequential, "\ufefftime_ms\n3\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].TimeMS != 3 {
		t.Errorf("got %+v, want one record with time_ms 3", got)
	}
}

func TestReaderFloatCount(t *testing.T) {
	const data = "schedule,threads,cache_miss,cache_ref\nstatic,1,1.5e3,4e3\n"
	got, err := parseAll(t, ParallelPerf, data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].CacheMiss != 1500 || got[0].CacheRef != 4000 {
		t.Errorf("got %+v, want cache_miss 1500 and cache_ref 4000", got)
	}
}
