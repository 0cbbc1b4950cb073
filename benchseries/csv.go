// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/spmvbench/spmvstat/benchproc"
)

// Fields returns the key dimensions of every Row of t.
func (t *Table) Fields() benchproc.Field {
	if t.View == ChunkEvidence {
		return benchproc.Schedule | benchproc.Threads | benchproc.Chunk
	}
	return groupFields
}

// WriteCSV writes t as CSV: one header line naming the key dimensions,
// the metric and the observation count, then one line per Row.
func (t *Table) WriteCSV(out io.Writer) error {
	fields := t.Fields()
	hdr := append(fields.Names(), t.Metric, "n")
	csvw := csv.NewWriter(out)
	if err := csvw.Write(hdr); err != nil {
		return err
	}
	for _, r := range t.Rows() {
		row := append(r.Key.Project(fields).Values(), strof(r.Value), strconv.Itoa(r.N))
		if err := csvw.Write(row); err != nil {
			return err
		}
	}
	csvw.Flush()
	return csvw.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
