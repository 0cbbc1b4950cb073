// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"errors"
	"fmt"

	"github.com/spmvbench/spmvstat/benchproc"
)

// ErrNoInput is reported when a Builder has no records at all. It is a
// warning: the tables are valid and empty.
var ErrNoInput = errors.New("no benchmark input; nothing to aggregate")

// A MissingBaselineError reports a matrix that has parallel results but
// no sequential results. The matrix is left out of the speedup and
// efficiency views only.
type MissingBaselineError struct {
	Matrix string
}

func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("%s: no sequential baseline; excluded from speedup and efficiency", e.Matrix)
}

// A ZeroDivisorError reports rows of one group whose derived metric was
// undefined because its divisor was zero. Those rows were skipped; the
// rest of the group, and the run, are unaffected. There is one
// ZeroDivisorError per affected group.
type ZeroDivisorError struct {
	View   View
	Key    benchproc.Key
	Metric string
	Rows   int
}

func (e *ZeroDivisorError) Error() string {
	return fmt.Sprintf("%s %s: skipped %d row(s): %s has a zero divisor", e.View, e.Key, e.Rows, e.Metric)
}
