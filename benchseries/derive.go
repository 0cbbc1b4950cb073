// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"github.com/spmvbench/spmvstat/benchcsv"
	"github.com/spmvbench/spmvstat/benchmath"
)

// Baselines maps a matrix to its representative sequential time in
// milliseconds.
type Baselines map[string]float64

// ResolveBaselines computes the baseline of every matrix as the
// arithmetic mean of its sequential times. Each matrix that has
// parallel or perf records but no sequential records is reported as a
// *MissingBaselineError, in discovery order.
func ResolveBaselines(data *benchcsv.Datasets) (Baselines, []error) {
	bs := make(Baselines)
	var warnings []error
	for _, m := range data.Matrices() {
		d := data.Get(m)
		var times []float64
		for i := range d.Sequential {
			if r := &d.Sequential[i]; r.HasTime {
				times = append(times, r.TimeMS)
			}
		}
		if len(times) > 0 {
			bs[m] = benchmath.Mean(times)
			continue
		}
		if len(d.Parallel) > 0 || len(d.Perf) > 0 {
			warnings = append(warnings, &MissingBaselineError{m})
		}
	}
	return bs, warnings
}

// SpeedupOf returns baseline/timeMS. It reports false if timeMS is zero.
func SpeedupOf(baseline, timeMS float64) (float64, bool) {
	if timeMS == 0 {
		return 0, false
	}
	return baseline / timeMS, true
}

// EfficiencyOf returns speedup/threads. It reports false if threads is
// zero.
func EfficiencyOf(speedup float64, threads int) (float64, bool) {
	if threads == 0 {
		return 0, false
	}
	return speedup / float64(threads), true
}

// MissRateOf returns miss/ref. It reports false if ref is zero.
func MissRateOf(miss, ref int64) (float64, bool) {
	if ref == 0 {
		return 0, false
	}
	return float64(miss) / float64(ref), true
}
