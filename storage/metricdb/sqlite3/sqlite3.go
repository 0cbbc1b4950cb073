// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 registers the sqlite3 driver with metricdb. Importing
// it makes OpenSQL("sqlite3", ...) work.
package sqlite3

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/spmvbench/spmvstat/storage/metricdb"
)

func init() {
	metricdb.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		if d, ok := db.Driver().(*sqlite3.SQLiteDriver); ok && d.ConnectHook == nil {
			d.ConnectHook = func(c *sqlite3.SQLiteConn) error {
				_, err := c.Exec("PRAGMA foreign_keys = ON;", nil)
				return err
			}
		}
		// Each connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
		return nil
	})
}
