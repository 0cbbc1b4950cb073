// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metricdb stores aggregated metric tables in a SQL database.
//
// Each call to SaveTables records one run: a row in Runs and one row in
// Metrics per aggregated group of every table.
package metricdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/spmvbench/spmvstat/benchseries"
)

// DB is a metric database. It's safe for concurrent use by multiple
// goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun    *sql.Stmt
	insertMetric *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created BIGINT NOT NULL,
	Percentile DOUBLE NOT NULL
);
CREATE TABLE IF NOT EXISTS Metrics (
	RunID BIGINT UNSIGNED,
	MetricID BIGINT UNSIGNED,
	ViewName VARCHAR(32) NOT NULL,
	Metric VARCHAR(64) NOT NULL,
	Matrix VARCHAR(255) NOT NULL,
	Schedule VARCHAR(32) NOT NULL,
	Threads INT NOT NULL,
	Chunk INT NOT NULL,
	Value DOUBLE NOT NULL,
	N INT NOT NULL,
	PRIMARY KEY (RunID, MetricID),
{{if not .sqlite3}}
	Index (ViewName, Matrix(100)),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS MetricsViewMatrix ON Metrics(ViewName, Matrix);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Created, Percentile) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertMetric, err = db.sql.Prepare("INSERT INTO Metrics(RunID, MetricID, ViewName, Metric, Matrix, Schedule, Threads, Chunk, Value, N) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// SaveTables records tables as a new run and returns its ID. The run
// is written in a single transaction; on error nothing is stored.
func (db *DB) SaveTables(ctx context.Context, tables []*benchseries.Table) (runID int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var pct float64
	for _, t := range tables {
		if t.Percentile != 0 {
			pct = t.Percentile
			break
		}
	}
	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, now().Unix(), pct)
	if err != nil {
		return 0, err
	}
	runID, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	insert := tx.StmtContext(ctx, db.insertMetric)
	var id int64
	for _, t := range tables {
		for _, r := range t.Rows() {
			k := r.Key
			if _, err = insert.ExecContext(ctx, runID, id, t.View.String(), t.Metric, k.Matrix(), k.Schedule(), k.Threads(), k.Chunk(), r.Value, r.N); err != nil {
				return 0, err
			}
			id++
		}
	}
	return runID, nil
}

// A Metric is one stored aggregated value.
type Metric struct {
	View     string
	Metric   string
	Matrix   string // empty for views that average across matrices
	Schedule string
	Threads  int
	Chunk    int // zero unless View is the chunk view
	Value    float64
	N        int
}

// Metrics returns the metrics of run runID in insertion order.
func (db *DB) Metrics(ctx context.Context, runID int64) ([]Metric, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT ViewName, Metric, Matrix, Schedule, Threads, Chunk, Value, N FROM Metrics WHERE RunID = ? ORDER BY MetricID", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ms []Metric
	for rows.Next() {
		var m Metric
		if err := rows.Scan(&m.View, &m.Metric, &m.Matrix, &m.Schedule, &m.Threads, &m.Chunk, &m.Value, &m.N); err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

// CountRuns returns the number of runs stored in the database.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertMetric.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
