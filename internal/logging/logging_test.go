// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("info")
	defer SetOutput(os.Stderr)

	var buf strings.Builder
	SetOutput(&buf)
	if err := SetLogLevel("warn"); err != nil {
		t.Fatal(err)
	}
	GetLogger().Info("hidden")
	GetLogger().WithField("matrix", "cage4").Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "matrix=cage4") {
		t.Errorf("unexpected log output %q", out)
	}
	if GetLogger().GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %v", GetLogger().GetLevel())
	}
	if err := SetLogLevel("loud"); err == nil {
		t.Errorf("SetLogLevel(loud) succeeded")
	}
}
