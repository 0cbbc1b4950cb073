// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath provides the summary statistics used to aggregate
// repeated benchmark measurements.
//
// Every percentile in this package uses linear interpolation between
// order statistics: for a sample sorted ascending, quantile q is read
// at fractional index q×(n−1) and interpolated between the floor and
// ceiling indexes. Mixing quantile methods across views would make
// their numbers incomparable, so all callers go through Percentile.
package benchmath

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A Sample is a set of repeated measurements of one group.
type Sample struct {
	// Values are the measured values, in ascending order.
	Values []float64
}

// NewSample constructs a Sample from a set of measurements. It sorts a
// copy of values; the caller's slice is not modified.
func NewSample(values []float64) *Sample {
	vs := append([]float64(nil), values...)
	sort.Float64s(vs)
	return &Sample{vs}
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// Len returns the number of values in s.
func (s *Sample) Len() int {
	return len(s.Values)
}

// Percentile returns the q-quantile of s. See the package
// documentation for the interpolation method.
func (s *Sample) Percentile(q float64) float64 {
	return Percentile(s.Values, q)
}

// Mean returns the arithmetic mean of s, or NaN if s is empty.
func (s *Sample) Mean() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return s.sample().Mean()
}

// Bounds returns the smallest and largest values in s. Both are NaN if
// s is empty.
func (s *Sample) Bounds() (lo, hi float64) {
	if len(s.Values) == 0 {
		return math.NaN(), math.NaN()
	}
	return s.Values[0], s.Values[len(s.Values)-1]
}

// Percentile returns the q-quantile of sorted, which must be in
// ascending order. q is clamped to [0, 1]. It returns NaN if sorted is
// empty or q is NaN.
func Percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(q) {
		return math.NaN()
	}
	q = clamp(q, 0, 1)
	idx := q * float64(n-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	a, b := sorted[lo], sorted[hi]
	// Rounding can push a+(b-a)*frac a hair outside [a, b].
	return clamp(a+(b-a)*frac, a, b)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Mean returns the arithmetic mean of xs, or NaN if xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stats.Mean(xs)
}
