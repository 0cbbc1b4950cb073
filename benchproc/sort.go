// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"cmp"
	"sort"
)

// An Order records the order in which string values were first
// observed. The zero Order is empty and ready to use.
type Order struct {
	pos  map[string]int
	vals []string
}

// NewOrder returns an Order pre-seeded with vals, in order. Values
// observed later sort after these.
func NewOrder(vals ...string) *Order {
	o := new(Order)
	for _, v := range vals {
		o.Observe(v)
	}
	return o
}

// Observe records v if it has not been seen before and returns its
// position.
func (o *Order) Observe(v string) int {
	if p, ok := o.pos[v]; ok {
		return p
	}
	if o.pos == nil {
		o.pos = make(map[string]int)
	}
	p := len(o.vals)
	o.pos[v] = p
	o.vals = append(o.vals, v)
	return p
}

// Pos returns the position of v and whether it has been observed.
func (o *Order) Pos(v string) (int, bool) {
	if o == nil {
		return 0, false
	}
	p, ok := o.pos[v]
	return p, ok
}

// Values returns the observed values in observation order.
func (o *Order) Values() []string {
	if o == nil {
		return nil
	}
	return o.vals
}

// compare orders a and b by observation. Unobserved values sort after
// observed ones, alphabetically among themselves.
func (o *Order) compare(a, b string) int {
	if a == b {
		return 0
	}
	pa, oka := o.Pos(a)
	pb, okb := o.Pos(b)
	switch {
	case oka && okb:
		return cmp.Compare(pa, pb)
	case oka:
		return -1
	case okb:
		return 1
	}
	return cmp.Compare(a, b)
}

// A Sorter orders Keys. Matrices and schedules sort by their Orders;
// threads and chunk sort numerically. A nil Order sorts its dimension
// alphabetically.
type Sorter struct {
	Matrices  *Order
	Schedules *Order
}

// Compare returns -1, 0 or +1 as a sorts before, equal to, or after b.
func (s Sorter) Compare(a, b Key) int {
	for _, f := range fieldOrder {
		var c int
		switch f {
		case Matrix:
			c = s.Matrices.compare(a.matrix, b.matrix)
		case Schedule:
			c = s.Schedules.compare(a.schedule, b.schedule)
		case Threads:
			c = cmp.Compare(a.threads, b.threads)
		case Chunk:
			c = cmp.Compare(a.chunk, b.chunk)
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(a.fields, b.fields)
}

// Less reports whether a sorts before b.
func (s Sorter) Less(a, b Key) bool {
	return s.Compare(a, b) < 0
}

// SortKeys sorts keys in place using Sorter{matrices, schedules}.
func SortKeys(keys []Key, matrices, schedules *Order) {
	s := Sorter{matrices, schedules}
	sort.SliceStable(keys, func(i, j int) bool {
		return s.Less(keys[i], keys[j])
	})
}
