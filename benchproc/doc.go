// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchproc provides the grouping keys used to aggregate
// benchmark records.
//
// A Key is a tuple over the dimensions of a benchmark run: matrix,
// schedule, thread count and chunk size. Keys are comparable and can
// be used directly as map keys. A Key carries the set of Fields it
// projects, so that (matrix, schedule) and (matrix, schedule, threads)
// keys with otherwise equal values never collide.
//
// The typical steps for grouping a stream of records are:
//
// 1. For each record, build a Key with the Fields of the desired view
// and observe its string dimensions in an Order, so that matrices and
// schedules keep the order they were first seen in.
//
// 2. Accumulate measurements in a map indexed by Key.
//
// 3. Sort the Keys with SortKeys. String dimensions sort by their
// Order; threads and chunk sort numerically.
package benchproc
