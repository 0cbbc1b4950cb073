// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"strconv"
	"strings"
)

// A Field is a set of key dimensions.
type Field uint8

const (
	Matrix Field = 1 << iota
	Schedule
	Threads
	Chunk

	// None is the empty Field set.
	None Field = 0
)

// fieldOrder is the flattened order of Key dimensions.
var fieldOrder = []Field{Matrix, Schedule, Threads, Chunk}

// Has reports whether f includes every field in o.
func (f Field) Has(o Field) bool {
	return f&o == o
}

// Names returns the names of the fields in f, in key order.
func (f Field) Names() []string {
	var names []string
	for _, o := range fieldOrder {
		if f.Has(o) {
			names = append(names, o.name())
		}
	}
	return names
}

func (f Field) name() string {
	switch f {
	case Matrix:
		return "matrix"
	case Schedule:
		return "schedule"
	case Threads:
		return "threads"
	case Chunk:
		return "chunk"
	}
	return strings.Join(f.Names(), ",")
}

func (f Field) String() string {
	return f.name()
}

// A Key is an immutable tuple over the Fields it projects. Two Keys
// are == if they project the same Fields and have identical values.
type Key struct {
	fields   Field
	matrix   string
	schedule string
	threads  int
	chunk    int
}

// NewKey returns a Key projecting fields. Values of dimensions outside
// fields are dropped.
func NewKey(fields Field, matrix, schedule string, threads, chunk int) Key {
	return Key{fields, matrix, schedule, threads, chunk}.Project(fields)
}

// IsZero reports whether k is a zeroed Key with no fields.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Fields returns the set of dimensions k projects.
func (k Key) Fields() Field {
	return k.fields
}

// Project returns the Key with only the dimensions in both k and f.
func (k Key) Project(f Field) Key {
	f &= k.fields
	out := Key{fields: f}
	if f.Has(Matrix) {
		out.matrix = k.matrix
	}
	if f.Has(Schedule) {
		out.schedule = k.schedule
	}
	if f.Has(Threads) {
		out.threads = k.threads
	}
	if f.Has(Chunk) {
		out.chunk = k.chunk
	}
	return out
}

// Without returns the Key with the dimensions in f removed.
func (k Key) Without(f Field) Key {
	return k.Project(k.fields &^ f)
}

func (k Key) Matrix() string   { return k.matrix }
func (k Key) Schedule() string { return k.schedule }
func (k Key) Threads() int     { return k.threads }
func (k Key) Chunk() int       { return k.chunk }

// Get returns the value of the single dimension f as a string, or ""
// if k does not project f.
func (k Key) Get(f Field) string {
	if !k.fields.Has(f) {
		return ""
	}
	switch f {
	case Matrix:
		return k.matrix
	case Schedule:
		return k.schedule
	case Threads:
		return strconv.Itoa(k.threads)
	case Chunk:
		return strconv.Itoa(k.chunk)
	}
	panic("Get requires a single field, got " + f.String())
}

// Values returns the values of k's dimensions in key order.
func (k Key) Values() []string {
	var vals []string
	for _, f := range fieldOrder {
		if k.fields.Has(f) {
			vals = append(vals, k.Get(f))
		}
	}
	return vals
}

// String returns Key as a space-separated sequence of name:value pairs
// in key order.
func (k Key) String() string {
	return k.string(true)
}

// StringValues returns Key as a space-separated sequence of values in
// key order.
func (k Key) StringValues() string {
	return k.string(false)
}

func (k Key) string(names bool) string {
	if k.IsZero() {
		return "<zero>"
	}
	buf := new(strings.Builder)
	for _, f := range fieldOrder {
		if !k.fields.Has(f) {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		if names {
			buf.WriteString(f.name())
			buf.WriteByte(':')
		}
		buf.WriteString(k.Get(f))
	}
	return buf.String()
}
