// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package influx exports aggregated metric tables to InfluxDB 2.
package influx

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/spmvbench/spmvstat/benchproc"
	"github.com/spmvbench/spmvstat/benchseries"
)

// Measurement is the InfluxDB measurement every metric is written to.
const Measurement = "spmv_metrics"

// Config locates an InfluxDB 2 bucket.
type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// A Writer writes metric tables to one bucket.
type Writer struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewWriter connects to the server in cfg and checks its health.
func NewWriter(ctx context.Context, cfg Config) (*Writer, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("influxdb %s: %w", cfg.URL, err)
	}
	if health.Status != "pass" {
		client.Close()
		msg := ""
		if health.Message != nil {
			msg = *health.Message
		}
		return nil, fmt.Errorf("influxdb %s: health check %s: %s", cfg.URL, health.Status, msg)
	}
	return &Writer{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}, nil
}

// Write writes every Row of tables, stamped with ts.
func (w *Writer) Write(ctx context.Context, tables []*benchseries.Table, ts time.Time) error {
	points := Points(tables, ts)
	if len(points) == 0 {
		return nil
	}
	if err := w.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("failed to write metric points: %w", err)
	}
	return nil
}

// Close releases the client's resources.
func (w *Writer) Close() {
	w.client.Close()
}

// Points converts tables to one point per Row. The view, metric and
// the Row's key dimensions become tags; value and n become fields.
func Points(tables []*benchseries.Table, ts time.Time) []*write.Point {
	var points []*write.Point
	for _, t := range tables {
		for _, r := range t.Rows() {
			tags := map[string]string{
				"view":   t.View.String(),
				"metric": t.Metric,
			}
			for _, f := range []benchproc.Field{benchproc.Matrix, benchproc.Schedule, benchproc.Threads, benchproc.Chunk} {
				if r.Key.Fields().Has(f) {
					tags[f.String()] = r.Key.Get(f)
				}
			}
			fields := map[string]interface{}{
				"value": r.Value,
				"n":     int64(r.N),
			}
			points = append(points, influxdb2.NewPoint(Measurement, tags, fields, ts))
		}
	}
	return points
}

