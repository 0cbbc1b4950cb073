// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned plain-text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build up
// a row at once.
type Table struct {
	rows  [][]textCell
	width []int
}

type textCell struct {
	value     string
	span      int
	alignment align
}

// A CellOption changes how a cell is laid out.
type CellOption func(c *textCell)

var (
	Left  CellOption = func(c *textCell) { c.alignment = alignLeft }
	Right CellOption = func(c *textCell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a single-column cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	return t.Span(1, value, opts...)
}

// Span adds a cell covering cols columns at the end of the current
// row. A span never widens the columns it covers.
func (t *Table) Span(cols int, value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := textCell{value: value, span: cols}
	for _, o := range opts {
		o(&c)
	}
	r := len(t.rows) - 1
	col := 0
	for _, prev := range t.rows[r] {
		col += prev.span
	}
	t.rows[r] = append(t.rows[r], c)
	if cols == 1 {
		for len(t.width) <= col {
			t.width = append(t.width, 0)
		}
		if w := utf8.RuneCountInString(value); w > t.width[col] {
			t.width[col] = w
		}
	}
	return t
}

// Format lays out table t and writes it to w. Columns are separated by
// two spaces; trailing spaces are trimmed.
func (t *Table) Format(w io.Writer) error {
	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		col := 0
		for i, c := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			cw := 0
			for j := col; j < col+c.span && j < len(t.width); j++ {
				if j > col {
					cw += 2
				}
				cw += t.width[j]
			}
			line.WriteString(c.alignment.pad(c.value, cw))
			col += c.span
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
