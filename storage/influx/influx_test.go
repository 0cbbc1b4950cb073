// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package influx

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spmvbench/spmvstat/benchcsv"
	"github.com/spmvbench/spmvstat/benchseries"
)

func TestPoints(t *testing.T) {
	ds := benchcsv.NewDatasets()
	ds.Add(
		benchcsv.Record{Matrix: "cage4", Kind: benchcsv.Parallel, Schedule: "guided", Threads: 8, Chunk: 32, TimeMS: 2, HasTime: true, BW: 7, HasBW: true},
		benchcsv.Record{Matrix: "cage4", Kind: benchcsv.Parallel, Schedule: "guided", Threads: 8, Chunk: 32, TimeMS: 2, HasTime: true, BW: 7, HasBW: true},
	)
	tabs, err := benchseries.NewBuilder(ds, benchseries.Options{}).Tables(benchseries.Bandwidth, benchseries.ChunkEvidence)
	if err != nil {
		t.Fatal(err)
	}
	ts := time.Unix(1700000000, 0)
	points := Points(tabs, ts)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}

	type kv struct{ K, V string }
	tags := func(i int) []kv {
		var out []kv
		for _, tag := range points[i].TagList() {
			out = append(out, kv{tag.Key, tag.Value})
		}
		return out
	}
	// Tags are sorted by key.
	if diff := cmp.Diff([]kv{{"matrix", "cage4"}, {"metric", "bw_gbs p90"}, {"schedule", "guided"}, {"threads", "8"}, {"view", "bandwidth"}}, tags(0)); diff != "" {
		t.Errorf("bandwidth tags (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]kv{{"chunk", "32"}, {"metric", "time_ms p90 mean"}, {"schedule", "guided"}, {"threads", "8"}, {"view", "chunks"}}, tags(1)); diff != "" {
		t.Errorf("chunk tags (-want +got):\n%s", diff)
	}

	p := points[0]
	if p.Name() != Measurement || !p.Time().Equal(ts) {
		t.Errorf("point = %s at %v", p.Name(), p.Time())
	}
	fields := make(map[string]interface{})
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	if diff := cmp.Diff(map[string]interface{}{"value": 7.0, "n": int64(2)}, fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}

func TestPointsEmpty(t *testing.T) {
	if got := Points(nil, time.Now()); len(got) != 0 {
		t.Errorf("Points(nil) = %v", got)
	}
}
