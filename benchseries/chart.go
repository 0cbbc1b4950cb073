// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/spmvbench/spmvstat/benchproc"
)

const (
	chartWidth  = 16 * vg.Centimeter
	chartHeight = 10 * vg.Centimeter
	chartDPI    = 150
)

// ChartName returns the file name stem of the chart of t for one
// schedule.
func (t *Table) ChartName(schedule string) string {
	pct := strconv.FormatFloat(math.Round(t.Percentile*100), 'g', -1, 64)
	switch t.View {
	case Bandwidth:
		return "bandwidth_" + pct + "pct_" + schedule
	case GFLOPS:
		return "gflops_" + pct + "pct_" + schedule
	case ChunkEvidence:
		return "time_vs_chunk_" + schedule
	case MissRate:
		return "cache_missrate_schedule_" + schedule
	}
	return t.View.String() + "_" + schedule
}

// Chart renders one PNG line chart per schedule of t into dir and
// returns the paths written. Schedules follow order as in BySchedule.
// Each Series is one line; for the chunk view the lines are thread
// counts and the x axis is logarithmic.
func Chart(t *Table, dir string, order []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	var paths []string
	for _, g := range t.BySchedule(order) {
		pl, err := t.plot(g)
		if err != nil {
			return paths, fmt.Errorf("chart %s: %w", t.ChartName(g.Schedule), err)
		}
		path := filepath.Join(dir, t.ChartName(g.Schedule)+".png")
		if err := savePNG(pl, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (t *Table) plot(g ScheduleGroup) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s (%s)", t.Metric, g.Schedule)
	pl.X.Label.Text = t.X.String()
	pl.Y.Label.Text = t.Metric
	pl.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	xs := make(map[int]bool)
	for i, s := range g.Series {
		pts := make(plotter.XYs, len(s.Points))
		for j, p := range s.Points {
			pts[j] = plotter.XY{X: float64(p.X), Y: p.Value}
			xs[p.X] = true
		}
		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		scatter.Color = plotutil.Color(i)
		scatter.Shape = plotutil.Shape(i)
		pl.Add(line, scatter)
		pl.Legend.Add(legend(s.Key), line, scatter)
	}

	ticks := xTicks(xs)
	if t.X == benchproc.Chunk && len(ticks) > 0 {
		// Log axes need a strictly positive range.
		pl.X.Scale = plot.LogScale{}
		pl.X.Min = ticks[0].Value / 2
		pl.X.Max = ticks[len(ticks)-1].Value * 2
	}
	pl.X.Tick.Marker = ticks
	return pl, nil
}

// legend names a Series by the dimensions that vary within a chart.
func legend(k benchproc.Key) string {
	k = k.Without(benchproc.Schedule)
	if k.Fields() == benchproc.Threads {
		return k.String()
	}
	return k.StringValues()
}

// xTicks labels exactly the x values present.
func xTicks(xs map[int]bool) plot.ConstantTicks {
	vals := make([]int, 0, len(xs))
	for x := range xs {
		vals = append(vals, x)
	}
	sort.Ints(vals)
	ticks := make(plot.ConstantTicks, len(vals))
	for i, x := range vals {
		ticks[i] = plot.Tick{Value: float64(x), Label: strconv.Itoa(x)}
	}
	return ticks
}

func savePNG(pl *plot.Plot, path string) error {
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight),
		vgimg.UseDPI(chartDPI), vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(can))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
