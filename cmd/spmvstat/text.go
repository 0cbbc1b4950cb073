// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spmvbench/spmvstat/benchseries"
	"github.com/spmvbench/spmvstat/internal/texttab"
)

// writeText writes each table as an aligned text table.
func writeText(w io.Writer, tables []*benchseries.Table) error {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s: %s\n", t.View, t.Metric)
		if t.View == benchseries.ChunkEvidence && len(t.Threads) > 0 {
			fmt.Fprintf(w, "threads: %s\n", joinInts(t.Threads))
		}
		rows := t.Rows()
		if len(rows) == 0 {
			fmt.Fprintln(w, "(no data)")
			continue
		}

		var tab texttab.Table
		tab.Row()
		for _, name := range t.Fields().Names() {
			tab.Cell(name)
		}
		tab.Cell(t.Metric, texttab.Right).Cell("n", texttab.Right)
		for _, r := range rows {
			tab.Row()
			for _, v := range r.Key.Values() {
				tab.Cell(v)
			}
			tab.Cell(formatValue(r.Value), texttab.Right).Cell(strconv.Itoa(r.N), texttab.Right)
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

func formatValue(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}

func joinInts(xs []int) string {
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = strconv.Itoa(x)
	}
	return strings.Join(s, " ")
}

// writeCSV writes each table as CSV, separated by blank lines.
func writeCSV(w io.Writer, tables []*benchseries.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := t.WriteCSV(w); err != nil {
			return err
		}
	}
	return nil
}

type jsonTable struct {
	View     string    `json:"view"`
	Metric   string    `json:"metric"`
	X        string    `json:"x"`
	Threads  []int     `json:"threads,omitempty"`
	Rows     []jsonRow `json:"rows"`
	Warnings []string  `json:"warnings,omitempty"`
}

type jsonRow struct {
	Matrix   string  `json:"matrix,omitempty"`
	Schedule string  `json:"schedule"`
	Threads  int     `json:"threads"`
	Chunk    int     `json:"chunk,omitempty"`
	Value    float64 `json:"value"`
	N        int     `json:"n"`
}

// writeJSON writes tables as one indented JSON array.
func writeJSON(w io.Writer, tables []*benchseries.Table) error {
	out := make([]jsonTable, 0, len(tables))
	for _, t := range tables {
		jt := jsonTable{
			View:    t.View.String(),
			Metric:  t.Metric,
			X:       t.X.String(),
			Threads: t.Threads,
			Rows:    []jsonRow{},
		}
		for _, r := range t.Rows() {
			k := r.Key
			jt.Rows = append(jt.Rows, jsonRow{k.Matrix(), k.Schedule(), k.Threads(), k.Chunk(), r.Value, r.N})
		}
		for _, warn := range t.Warnings {
			jt.Warnings = append(jt.Warnings, warn.Error())
		}
		out = append(out, jt)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(out)
}
