// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spmvbench/spmvstat/benchcsv"
	"github.com/spmvbench/spmvstat/benchseries"
	"github.com/spmvbench/spmvstat/internal/config"
	"github.com/spmvbench/spmvstat/internal/discover"
	"github.com/spmvbench/spmvstat/internal/logging"
	"github.com/spmvbench/spmvstat/storage/influx"
	"github.com/spmvbench/spmvstat/storage/metricdb"
)

// errAllFailed is returned when there were input files but none of
// them could be loaded.
var errAllFailed = errors.New("no input file could be loaded")

// A run is one invocation of the pipeline.
type run struct {
	cfg    *config.Config
	out    io.Writer
	logger *logrus.Logger
}

func newRun(cfg *config.Config, out io.Writer) *run {
	return &run{cfg: cfg, out: out, logger: logging.GetLogger()}
}

// load discovers and loads the input files. Files that fail are logged
// and skipped; it is an error only if every file failed.
func (r *run) load(ctx context.Context) (*benchcsv.Datasets, []error, error) {
	files, ignored, err := discover.Dir(r.cfg.Results)
	if err != nil {
		return nil, nil, err
	}
	for _, path := range ignored {
		r.logger.WithField("file", path).Debug("Ignoring file with unrecognized name")
	}
	r.logger.WithFields(logrus.Fields{
		"dir":      r.cfg.Results,
		"files":    len(files),
		"parallel": r.cfg.ParallelLoads,
	}).Debug("Loading results")

	data, errs := benchcsv.Load(ctx, files, benchcsv.Options{Parallel: r.cfg.ParallelLoads})
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	for _, err := range errs {
		entry := r.logger.WithError(err)
		var le *benchcsv.LoadError
		if errors.As(err, &le) {
			entry = r.logger.WithError(le.Err).WithFields(logrus.Fields{
				"file": le.File.Path,
				"kind": le.File.Kind,
			})
		}
		entry.Warn("Skipping file")
	}
	if len(files) > 0 && len(errs) == len(files) {
		return nil, errs, fmt.Errorf("%s: %w (%d file(s))", r.cfg.Results, errAllFailed, len(files))
	}
	return data, errs, nil
}

// aggregate computes views and writes them to every configured output.
func (r *run) aggregate(ctx context.Context, views []benchseries.View) error {
	data, _, err := r.load(ctx)
	if err != nil {
		return err
	}
	b := benchseries.NewBuilder(data, benchseries.Options{Percentile: r.cfg.Percentile})
	tables, err := b.Tables(views...)
	if err != nil {
		return err
	}
	r.logWarnings(tables)

	if err := r.write(tables); err != nil {
		return err
	}
	if err := r.charts(tables, b.Schedules()); err != nil {
		return err
	}
	if err := r.store(ctx, tables); err != nil {
		return err
	}
	return r.export(ctx, tables)
}

// logWarnings logs each distinct diagnostic of tables once.
func (r *run) logWarnings(tables []*benchseries.Table) {
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, w := range t.Warnings {
			msg := w.Error()
			if seen[msg] {
				continue
			}
			seen[msg] = true
			entry := r.logger.WithError(w).WithField("view", t.View)
			var mb *benchseries.MissingBaselineError
			if errors.As(w, &mb) {
				entry = entry.WithField("matrix", mb.Matrix)
			}
			entry.Warn("Incomplete results")
		}
	}
}

func (r *run) write(tables []*benchseries.Table) error {
	switch r.cfg.Output.Format {
	case "csv":
		return writeCSV(r.out, tables)
	case "json":
		return writeJSON(r.out, tables)
	case "html":
		return writeHTML(r.out, tables)
	}
	return writeText(r.out, tables)
}

// charts writes one chart per table and schedule. Configured schedules
// come first, then any others in discovery order.
func (r *run) charts(tables []*benchseries.Table, discovered []string) error {
	dir := r.cfg.Output.Charts
	if dir == "" {
		return nil
	}
	order := append(append([]string(nil), r.cfg.Schedules...), discovered...)
	for _, t := range tables {
		paths, err := benchseries.Chart(t, dir, order)
		if err != nil {
			return err
		}
		for _, p := range paths {
			r.logger.WithFields(logrus.Fields{"view": t.View, "file": p}).Info("Wrote chart")
		}
	}
	return nil
}

// store saves tables to the configured SQL database.
func (r *run) store(ctx context.Context, tables []*benchseries.Table) error {
	dbc := r.cfg.Database
	if dbc.DSN == "" {
		return nil
	}
	db, err := metricdb.OpenSQL(dbc.Driver, dbc.DSN)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", dbc.Driver, err)
	}
	defer db.Close()
	id, err := db.SaveTables(ctx, tables)
	if err != nil {
		return fmt.Errorf("storing tables: %w", err)
	}
	r.logger.WithFields(logrus.Fields{"driver": dbc.Driver, "run": id}).Info("Stored tables")
	return nil
}

// export writes tables to the configured InfluxDB bucket.
func (r *run) export(ctx context.Context, tables []*benchseries.Table) error {
	ic := r.cfg.Influx
	if ic.URL == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	w, err := influx.NewWriter(ctx, influx.Config{URL: ic.URL, Token: ic.Token, Org: ic.Org, Bucket: ic.Bucket})
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Write(ctx, tables, time.Now()); err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{"url": ic.URL, "bucket": ic.Bucket}).Info("Exported tables")
	return nil
}

// validate loads every input file and reports each one that fails.
func (r *run) validate(ctx context.Context) error {
	data, errs, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, e := range errs {
		fmt.Fprintln(r.out, e)
	}
	fmt.Fprintf(r.out, "%d matrices loaded, %d file(s) failed\n", data.Len(), len(errs))
	if len(errs) > 0 {
		return fmt.Errorf("%d file(s) failed validation", len(errs))
	}
	return nil
}
