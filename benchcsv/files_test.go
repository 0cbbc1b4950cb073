// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

// writeFiles writes name→content pairs into a fresh directory and
// returns File descriptors in the given order.
func writeFiles(t *testing.T, nameData ...string) []File {
	t.Helper()
	dir := t.TempDir()
	var files []File
	for i := 0; i < len(nameData); i += 2 {
		path := filepath.Join(dir, nameData[i])
		if err := os.WriteFile(path, []byte(nameData[i+1]), 0o666); err != nil {
			t.Fatal(err)
		}
		f, err := NewFile(path)
		if err != nil {
			t.Fatal(err)
		}
		files = append(files, f)
	}
	return files
}

func TestLoad(t *testing.T) {
	for _, parallel := range []int{0, 4} {
		files := writeFiles(t,
			"b_parallel.csv", "schedule,threads,chunk,time_ms\nstatic,2,1,5\n",
			"a_sequential.csv", "time_ms\n100\n100\n",
			"a_parallel.csv", "schedule,threads,chunk,time_ms\nstatic,1,1,50\n",
			"bad_parallel.csv", "schedule,threads\nstatic,1\n",
			"a_parallel_perf.csv", "schedule,threads,cache_miss,cache_ref\nstatic,1,1,2\n",
			"c_sequential.csv", "time_ms\n",
		)
		ds, errs := Load(context.Background(), files, Options{Parallel: parallel})

		if diff := cmp.Diff([]string{"b", "a", "c"}, ds.Matrices()); diff != "" {
			t.Errorf("parallel=%d: matrix order (-want +got):\n%s", parallel, diff)
		}
		a := ds.Get("a")
		if len(a.Sequential) != 2 || len(a.Parallel) != 1 || len(a.Perf) != 1 {
			t.Errorf("parallel=%d: dataset a has %d/%d/%d records, want 2/1/1", parallel, len(a.Sequential), len(a.Parallel), len(a.Perf))
		}
		if ds.Get("bad") != nil {
			t.Errorf("parallel=%d: failed file produced a dataset", parallel)
		}
		if len(errs) != 1 {
			t.Fatalf("parallel=%d: got errors %v, want exactly one", parallel, errs)
		}
		var le *LoadError
		var se *SchemaError
		if !errors.As(errs[0], &le) || !errors.As(errs[0], &se) {
			t.Fatalf("parallel=%d: got %T, want *LoadError wrapping *SchemaError", parallel, errs[0])
		}
		if le.File.MatrixName() != "bad" {
			t.Errorf("parallel=%d: load error names %q, want bad", parallel, le.File.MatrixName())
		}
	}
}

func TestLoadConcurrentNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	var nameData []string
	for _, m := range []string{"m0", "m1", "m2", "m3", "m4", "m5", "m6", "m7"} {
		nameData = append(nameData, m+"_parallel.csv", "schedule,threads,chunk,time_ms\nstatic,4,8,1\ndynamic,8,8,2\n")
	}
	files := writeFiles(t, nameData...)
	ds, errs := Load(context.Background(), files, Options{Parallel: 3})
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	if ds.Len() != 8 {
		t.Errorf("got %d matrices, want 8", ds.Len())
	}
	for i, m := range ds.Matrices() {
		if want := files[i].MatrixName(); m != want {
			t.Errorf("matrix %d is %q, want %q", i, m, want)
		}
	}
}

func TestLoadCanceled(t *testing.T) {
	files := writeFiles(t, "a_sequential.csv", "time_ms\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ds, errs := Load(ctx, files, Options{})
	if ds.Len() != 0 || len(errs) != 1 || !errors.Is(errs[0], context.Canceled) {
		t.Errorf("got %d matrices and errors %v, want none and context.Canceled", ds.Len(), errs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	files := []File{{Path: filepath.Join(t.TempDir(), "gone_parallel.csv"), Kind: Parallel}}
	_, errs := Load(context.Background(), files, Options{})
	if len(errs) != 1 || !errors.Is(errs[0], os.ErrNotExist) {
		t.Errorf("got %v, want a not-exist error", errs)
	}
}
