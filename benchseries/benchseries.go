// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries aggregates benchmark records into metric tables.
//
// A Builder joins parallel runs against their sequential baselines,
// derives per-row metrics, and groups them into one Table per View.
// Each Table is a list of Series; a Series is an ordered list of
// (x, value) Points where x is the thread count, or the chunk size for
// the chunk view.
//
// Problems that do not prevent aggregation are returned as typed
// values in Table.Warnings rather than printed.
package benchseries

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/spmvbench/spmvstat/benchcsv"
	"github.com/spmvbench/spmvstat/benchmath"
	"github.com/spmvbench/spmvstat/benchproc"
)

// A View selects one metric table shape.
type View int

const (
	// Bandwidth is the per-group percentile of bw_gbs over
	// (matrix, schedule, threads).
	Bandwidth View = iota
	// Efficiency is the per-group mean of speedup/threads over
	// (matrix, schedule, threads).
	Efficiency
	// Speedup is the per-group mean of baseline/time_ms over
	// (matrix, schedule, threads).
	Speedup
	// ChunkEvidence is time_ms against chunk size: the percentile of
	// time_ms per (matrix, schedule, chunk, threads), then the mean
	// of those percentiles across matrices per (schedule, threads,
	// chunk). It needs no baseline, so matrices without sequential
	// results are included.
	ChunkEvidence
	// MissRate is the per-group mean of cache_miss/cache_ref over
	// (matrix, schedule, threads) of perf records.
	MissRate
	// GFLOPS is the per-group percentile of gflops over
	// (matrix, schedule, threads).
	GFLOPS

	numViews
)

var viewNames = [numViews]string{"bandwidth", "efficiency", "speedup", "chunks", "missrate", "gflops"}

func (v View) String() string {
	if v >= 0 && v < numViews {
		return viewNames[v]
	}
	return "View(" + strconv.Itoa(int(v)) + ")"
}

// ParseView returns the View named s.
func ParseView(s string) (View, error) {
	for v, name := range viewNames {
		if name == s {
			return View(v), nil
		}
	}
	return 0, fmt.Errorf("unknown view %q (want one of %v)", s, viewNames)
}

// AllViews returns every View in declaration order.
func AllViews() []View {
	vs := make([]View, numViews)
	for i := range vs {
		vs[i] = View(i)
	}
	return vs
}

// NeedsBaseline reports whether v is derived from the sequential
// baseline.
func (v View) NeedsBaseline() bool {
	return v == Efficiency || v == Speedup
}

// A Point is one aggregated value of a Series.
type Point struct {
	X     int     // threads, or chunk size for ChunkEvidence
	Value float64 // aggregated metric
	N     int     // number of observations aggregated
}

// A Series is the Points sharing every key dimension except X, in
// ascending X order.
type Series struct {
	Key    benchproc.Key
	Points []Point
}

// A Row is one flattened Point: the full group key and its value.
type Row struct {
	Key   benchproc.Key
	Value float64
	N     int
}

// A Table is the output of one View.
type Table struct {
	View   View
	Metric string          // name of the aggregated value, e.g. "bw_gbs p90"
	X      benchproc.Field // benchproc.Threads or benchproc.Chunk

	// Percentile is the quantile of a percentile view, or zero.
	Percentile float64

	// Series are ordered by matrix and schedule discovery order,
	// then numerically by the remaining dimensions.
	Series []*Series

	// Threads lists every thread count that appears in Series, in
	// ascending order.
	Threads []int

	// Warnings are the non-fatal problems found while building the
	// table, such as *MissingBaselineError and *ZeroDivisorError.
	Warnings []error
}

// Rows flattens t into one Row per Point, in Series order.
func (t *Table) Rows() []Row {
	var rows []Row
	for _, s := range t.Series {
		for _, p := range s.Points {
			rows = append(rows, Row{s.PointKey(t.X, p), p.Value, p.N})
		}
	}
	return rows
}

// PointKey returns the full group key of point p, whose X is dimension
// x.
func (s *Series) PointKey(x benchproc.Field, p Point) benchproc.Key {
	k := s.Key
	threads, chunk := k.Threads(), k.Chunk()
	if x == benchproc.Chunk {
		chunk = p.X
	} else {
		threads = p.X
	}
	return benchproc.NewKey(k.Fields()|x, k.Matrix(), k.Schedule(), threads, chunk)
}

// A ScheduleGroup is the Series of a Table that share a schedule.
type ScheduleGroup struct {
	Schedule string
	Series   []*Series
}

// BySchedule splits t by schedule. Groups follow order; schedules not
// in order follow in the Table's own order. Schedules in order with no
// Series are omitted.
func (t *Table) BySchedule(order []string) []ScheduleGroup {
	idx := make(map[string]int)
	var groups []ScheduleGroup
	for _, s := range order {
		if _, ok := idx[s]; !ok {
			idx[s] = len(groups)
			groups = append(groups, ScheduleGroup{Schedule: s})
		}
	}
	for _, s := range t.Series {
		sched := s.Key.Schedule()
		i, ok := idx[sched]
		if !ok {
			i = len(groups)
			idx[sched] = i
			groups = append(groups, ScheduleGroup{Schedule: sched})
		}
		groups[i].Series = append(groups[i].Series, s)
	}
	out := groups[:0]
	for _, g := range groups {
		if len(g.Series) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// DefaultPercentile is the quantile used by percentile views when
// Options.Percentile is zero.
const DefaultPercentile = 0.9

// Options configures a Builder.
type Options struct {
	// Percentile is the quantile in (0, 1] used by every percentile
	// view. Zero means DefaultPercentile.
	Percentile float64
}

// A Builder computes metric Tables over a fixed set of Datasets.
type Builder struct {
	data      *benchcsv.Datasets
	q         float64
	baselines Baselines
	missing   []error

	matrices, schedules *benchproc.Order
}

// NewBuilder returns a Builder over data. The Builder resolves
// baselines once; data must not be modified afterwards.
func NewBuilder(data *benchcsv.Datasets, opts Options) *Builder {
	b := &Builder{
		data:      data,
		q:         opts.Percentile,
		matrices:  new(benchproc.Order),
		schedules: new(benchproc.Order),
	}
	if b.q == 0 {
		b.q = DefaultPercentile
	}
	b.baselines, b.missing = ResolveBaselines(data)
	for _, m := range data.Matrices() {
		b.matrices.Observe(m)
		d := data.Get(m)
		for _, recs := range [][]benchcsv.Record{d.Parallel, d.Perf} {
			for i := range recs {
				b.schedules.Observe(recs[i].Schedule)
			}
		}
	}
	return b
}

// Baselines returns the resolved baseline of each matrix.
func (b *Builder) Baselines() Baselines {
	return b.baselines
}

// Schedules returns the schedules in the order they were discovered.
func (b *Builder) Schedules() []string {
	return b.schedules.Values()
}

// Tables returns the Table of each view, in order.
func (b *Builder) Tables(views ...View) ([]*Table, error) {
	var ts []*Table
	for _, v := range views {
		t, err := b.Table(v)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// Table computes the Table for view v.
func (b *Builder) Table(v View) (*Table, error) {
	var t *Table
	switch v {
	case Bandwidth:
		t = b.percentileView(v, "bw_gbs", func(r *benchcsv.Record) (float64, bool) { return r.BW, r.HasBW })
	case GFLOPS:
		t = b.percentileView(v, "gflops", func(r *benchcsv.Record) (float64, bool) { return r.GFLOPS, r.HasGFLOPS })
	case Efficiency, Speedup:
		t = b.baselineView(v)
	case ChunkEvidence:
		t = b.chunkView()
	case MissRate:
		t = b.missRateView()
	default:
		return nil, fmt.Errorf("unknown view %v", v)
	}
	if b.data.Len() == 0 {
		t.Warnings = append(t.Warnings, ErrNoInput)
	}
	return t, nil
}

func (b *Builder) pctName() string {
	return "p" + strconv.FormatFloat(math.Round(b.q*1e4)/100, 'g', -1, 64)
}

const groupFields = benchproc.Matrix | benchproc.Schedule | benchproc.Threads

func groupKey(r *benchcsv.Record) benchproc.Key {
	return benchproc.NewKey(groupFields, r.Matrix, r.Schedule, r.Threads, 0)
}

func (b *Builder) percentileView(v View, col string, val func(*benchcsv.Record) (float64, bool)) *Table {
	t := &Table{View: v, Metric: col + " " + b.pctName(), X: benchproc.Threads, Percentile: b.q}
	var a accum
	for _, m := range b.data.Matrices() {
		recs := b.data.Get(m).Parallel
		for i := range recs {
			if x, ok := val(&recs[i]); ok {
				a.add(groupKey(&recs[i]), x)
			}
		}
	}
	b.emit(t, &a, func(s *benchmath.Sample) float64 { return s.Percentile(b.q) })
	return t
}

func (b *Builder) baselineView(v View) *Table {
	t := &Table{View: v, Metric: v.String(), X: benchproc.Threads}
	t.Warnings = append(t.Warnings, b.missing...)
	var a accum
	for _, m := range b.data.Matrices() {
		base, ok := b.baselines[m]
		if !ok {
			continue
		}
		recs := b.data.Get(m).Parallel
		for i := range recs {
			r := &recs[i]
			if !r.HasTime {
				continue
			}
			k := groupKey(r)
			x, ok := SpeedupOf(base, r.TimeMS)
			if ok && v == Efficiency {
				x, ok = EfficiencyOf(x, r.Threads)
			}
			if !ok {
				a.skip(k)
				continue
			}
			a.add(k, x)
		}
	}
	b.emit(t, &a, (*benchmath.Sample).Mean)
	return t
}

func (b *Builder) missRateView() *Table {
	t := &Table{View: MissRate, Metric: "miss_rate", X: benchproc.Threads}
	var a accum
	for _, m := range b.data.Matrices() {
		recs := b.data.Get(m).Perf
		for i := range recs {
			r := &recs[i]
			if !r.HasCache {
				continue
			}
			k := groupKey(r)
			if x, ok := MissRateOf(r.CacheMiss, r.CacheRef); ok {
				a.add(k, x)
			} else {
				a.skip(k)
			}
		}
	}
	b.emit(t, &a, (*benchmath.Sample).Mean)
	return t
}

// chunkView computes the time-vs-chunk curves in two stages. The first
// stage takes the percentile of time_ms for each (matrix, schedule,
// chunk, threads). The second stage averages those percentiles over
// matrices sharing a (schedule, threads, chunk) bucket.
func (b *Builder) chunkView() *Table {
	t := &Table{View: ChunkEvidence, Metric: "time_ms " + b.pctName() + " mean", X: benchproc.Chunk, Percentile: b.q}
	var stage1 accum
	for _, m := range b.data.Matrices() {
		recs := b.data.Get(m).Parallel
		for i := range recs {
			r := &recs[i]
			if !r.HasTime || !r.HasChunk() {
				continue
			}
			k := benchproc.NewKey(benchproc.Matrix|benchproc.Schedule|benchproc.Threads|benchproc.Chunk, r.Matrix, r.Schedule, r.Threads, r.Chunk)
			stage1.add(k, r.TimeMS)
		}
	}
	var stage2 accum
	for _, k := range stage1.sorted(b.sorter()) {
		c := stage1.cells[k]
		stage2.add(k.Without(benchproc.Matrix), benchmath.NewSample(c.xs).Percentile(b.q))
	}
	b.emit(t, &stage2, (*benchmath.Sample).Mean)
	return t
}

func (b *Builder) sorter() benchproc.Sorter {
	return benchproc.Sorter{Matrices: b.matrices, Schedules: b.schedules}
}

// emit summarizes each non-empty group of a into t, splitting groups
// into Series by every dimension except t.X.
func (b *Builder) emit(t *Table, a *accum, summarize func(*benchmath.Sample) float64) {
	threads := make(map[int]bool)
	var cur *Series
	for _, k := range a.sorted(b.sorter()) {
		c := a.cells[k]
		if c.skipped > 0 {
			t.Warnings = append(t.Warnings, &ZeroDivisorError{t.View, k, t.Metric, c.skipped})
		}
		if len(c.xs) == 0 {
			continue
		}
		sk := k.Without(t.X)
		if cur == nil || cur.Key != sk {
			cur = &Series{Key: sk}
			t.Series = append(t.Series, cur)
		}
		x := k.Threads()
		if t.X == benchproc.Chunk {
			x = k.Chunk()
		}
		cur.Points = append(cur.Points, Point{x, summarize(benchmath.NewSample(c.xs)), len(c.xs)})
		threads[k.Threads()] = true
	}
	for th := range threads {
		t.Threads = append(t.Threads, th)
	}
	sort.Ints(t.Threads)
}

// An accum collects observations per group key.
type accum struct {
	cells map[benchproc.Key]*cell
	keys  []benchproc.Key
}

type cell struct {
	xs      []float64
	skipped int // rows dropped for a zero divisor
}

func (a *accum) get(k benchproc.Key) *cell {
	if a.cells == nil {
		a.cells = make(map[benchproc.Key]*cell)
	}
	c := a.cells[k]
	if c == nil {
		c = new(cell)
		a.cells[k] = c
		a.keys = append(a.keys, k)
	}
	return c
}

func (a *accum) add(k benchproc.Key, x float64) {
	c := a.get(k)
	c.xs = append(c.xs, x)
}

func (a *accum) skip(k benchproc.Key) {
	a.get(k).skipped++
}

// sorted returns the group keys in s order.
func (a *accum) sorted(s benchproc.Sorter) []benchproc.Key {
	keys := append([]benchproc.Key(nil), a.keys...)
	sort.SliceStable(keys, func(i, j int) bool { return s.Less(keys[i], keys[j]) })
	return keys
}
