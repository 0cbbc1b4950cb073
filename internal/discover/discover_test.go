// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spmvbench/spmvstat/benchcsv"
)

func TestDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"cage4_sequential.csv",
		"cage4_parallel.csv",
		"cage4_parallel_perf.csv",
		"bcsstk01_parallel.csv",
		"notes.txt",
		"_parallel.csv",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0666); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "x_parallel.csv"), 0777); err != nil {
		t.Fatal(err)
	}

	files, ignored, err := Dir(dir)
	if err != nil {
		t.Fatal(err)
	}
	p := func(name string) string { return filepath.Join(dir, name) }
	want := []benchcsv.File{
		{Path: p("bcsstk01_parallel.csv"), Kind: benchcsv.Parallel, Matrix: "bcsstk01"},
		{Path: p("cage4_parallel.csv"), Kind: benchcsv.Parallel, Matrix: "cage4"},
		{Path: p("cage4_parallel_perf.csv"), Kind: benchcsv.ParallelPerf, Matrix: "cage4"},
		{Path: p("cage4_sequential.csv"), Kind: benchcsv.Sequential, Matrix: "cage4"},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{p("_parallel.csv"), p("notes.txt")}, ignored); diff != "" {
		t.Errorf("ignored (-want +got):\n%s", diff)
	}
}

func TestDirMissing(t *testing.T) {
	if _, _, err := Dir(filepath.Join(t.TempDir(), "nope")); !os.IsNotExist(err) {
		t.Errorf("got %v, want not-exist error", err)
	}
}
