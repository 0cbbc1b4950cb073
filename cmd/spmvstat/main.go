// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Spmvstat aggregates SpMV benchmark results.
//
// Usage:
//
//	spmvstat [flags] <view>|all|validate
//
// Spmvstat reads the benchmark CSV files in a results directory. Each
// file is named <matrix>_sequential.csv, <matrix>_parallel.csv or
// <matrix>_parallel_perf.csv. It joins parallel runs against the mean
// sequential time of their matrix and prints one table per view:
//
//	bandwidth   p90 of bw_gbs per (matrix, schedule, threads)
//	efficiency  mean of speedup/threads per (matrix, schedule, threads)
//	speedup     mean of baseline/time_ms per (matrix, schedule, threads)
//	chunks      p90 of time_ms per matrix, averaged over matrices,
//	            per (schedule, threads, chunk)
//	missrate    mean of cache_miss/cache_ref per (matrix, schedule, threads)
//	gflops      p90 of gflops per (matrix, schedule, threads)
//
// The percentile is set with --percentile. Matrices without sequential
// results are left out of speedup and efficiency with a warning.
//
// Tables are printed as text, csv, json or html (--format). With
// --charts, one PNG line chart per view and schedule is written to the
// given directory. With --db, tables are also stored in a SQL database
// (sqlite3 or mysql); an influx section in the --config file exports
// them to InfluxDB 2.
//
// Settings may come from a YAML file given by --config. Flags override
// the file. ${VAR} references in the file are expanded from the
// environment, after loading a .env file if one is present.
//
// The exit status is non-zero only for bad configuration or when no
// input file could be loaded.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"github.com/spmvbench/spmvstat/benchseries"
	"github.com/spmvbench/spmvstat/internal/config"
	"github.com/spmvbench/spmvstat/internal/logging"
	_ "github.com/spmvbench/spmvstat/storage/metricdb/sqlite3"
)

// flags holds the values of the persistent command-line flags.
type flags struct {
	logLevel   string
	configFile string
	envFile    string
	results    string
	format     string
	charts     string
	dbDriver   string
	db         string
	parallel   int
	percentile float64
	schedules  []string
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		logging.GetLogger().WithError(err).Fatal("spmvstat failed")
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:           "spmvstat",
		Short:         "Aggregate SpMV benchmark results",
		Long:          "Aggregate sequential and parallel SpMV benchmark CSV files into bandwidth, efficiency, speedup, chunk-size and cache miss-rate tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f.logLevel != "" {
				if err := logging.SetLogLevel(f.logLevel); err != nil {
					return fmt.Errorf("invalid log level: %w", err)
				}
			}
			return nil
		},
	}
	rootCmd.SetOut(out)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.logLevel, "log-level", "", "Set log level (trace, debug, info, warn, error)")
	pf.StringVarP(&f.configFile, "config", "c", "", "Path to YAML configuration file")
	pf.StringVar(&f.envFile, "env-file", "", "Path to .env file (default ./.env if present)")
	pf.StringVarP(&f.results, "results", "r", "", "Directory of benchmark CSV files (default \"results\")")
	pf.StringVarP(&f.format, "format", "f", "", "Output format: text, csv, json or html (default \"text\")")
	pf.StringVar(&f.charts, "charts", "", "Write PNG charts to this directory")
	pf.StringVar(&f.dbDriver, "db-driver", "", "Database driver for --db: sqlite3 or mysql (default \"sqlite3\")")
	pf.StringVar(&f.db, "db", "", "Store tables in the database at this DSN")
	pf.IntVarP(&f.parallel, "parallel", "j", 0, "Number of files to load concurrently (default 1)")
	pf.Float64Var(&f.percentile, "percentile", 0, "Quantile for percentile views, in (0, 1] (default 0.9)")
	pf.StringSliceVar(&f.schedules, "schedules", nil, "Schedule order for output and charts (default static,dynamic,guided)")

	for _, v := range benchseries.AllViews() {
		rootCmd.AddCommand(&cobra.Command{
			Use:   v.String(),
			Short: "Compute the " + v.String() + " table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := f.config(cmd)
				if err != nil {
					return err
				}
				return newRun(cfg, cmd.OutOrStdout()).aggregate(cmd.Context(), []benchseries.View{v})
			},
		})
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Compute every configured view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			views, err := cfg.ParsedViews()
			if err != nil {
				return err
			}
			return newRun(cfg, cmd.OutOrStdout()).aggregate(cmd.Context(), views)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and the schema of every input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			return newRun(cfg, cmd.OutOrStdout()).validate(cmd.Context())
		},
	})

	return rootCmd
}

// config loads the configuration file, if any, and applies the flags
// that were set on the command line.
func (f *flags) config(cmd *cobra.Command) (*config.Config, error) {
	logger := logging.GetLogger()

	if err := config.LoadEnv(f.envFile); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	cfg := config.Default()
	if f.configFile != "" {
		var err error
		if cfg, err = config.Load(f.configFile); err != nil {
			return nil, err
		}
		logger.WithField("file", f.configFile).Debug("Loaded configuration")
	}

	changed := cmd.Flags().Changed
	if changed("results") {
		cfg.Results = f.results
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("charts") {
		cfg.Output.Charts = f.charts
	}
	if changed("db-driver") {
		cfg.Database.Driver = f.dbDriver
	}
	if changed("db") {
		cfg.Database.DSN = f.db
	}
	if changed("parallel") {
		cfg.ParallelLoads = f.parallel
	}
	if changed("percentile") {
		cfg.Percentile = f.percentile
	}
	if changed("schedules") {
		cfg.Schedules = f.schedules
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
