// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package discover finds benchmark result files in a directory.
package discover

import (
	"os"
	"path/filepath"

	"github.com/spmvbench/spmvstat/benchcsv"
)

// Dir returns the result files directly in dir, in file name order.
// Entries whose names carry no recognized suffix are returned in
// ignored.
func Dir(dir string) (files []benchcsv.File, ignored []string, err error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		path := filepath.Join(dir, ent.Name())
		f, err := benchcsv.NewFile(path)
		if err != nil {
			ignored = append(ignored, path)
			continue
		}
		files = append(files, f)
	}
	return files, ignored, nil
}
