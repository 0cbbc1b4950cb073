// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestSort(t *testing.T) {
	check := func(keys []Key, matrices, schedules *Order, want ...string) {
		t.Helper()
		SortKeys(keys, matrices, schedules)
		var got []string
		for _, key := range keys {
			got = append(got, key.String())
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	k := func(m, s string, th, ch int) Key {
		return NewKey(Matrix|Schedule|Threads|Chunk, m, s, th, ch)
	}

	// Observation order for strings, numeric for ints.
	check([]Key{k("b", "static", 16, 1), k("a", "static", 2, 1), k("b", "static", 4, 1)},
		NewOrder("b", "a"), nil,
		"matrix:b schedule:static threads:4 chunk:1",
		"matrix:b schedule:static threads:16 chunk:1",
		"matrix:a schedule:static threads:2 chunk:1")

	// Explicit schedule order.
	check([]Key{k("a", "static", 1, 1), k("a", "guided", 1, 1), k("a", "dynamic", 1, 1)},
		nil, NewOrder("static", "dynamic", "guided"),
		"matrix:a schedule:static threads:1 chunk:1",
		"matrix:a schedule:dynamic threads:1 chunk:1",
		"matrix:a schedule:guided threads:1 chunk:1")

	// Unobserved values go last, alphabetically.
	check([]Key{k("a", "zz", 1, 1), k("a", "aa", 1, 1), k("a", "static", 1, 1)},
		nil, NewOrder("static"),
		"matrix:a schedule:static threads:1 chunk:1",
		"matrix:a schedule:aa threads:1 chunk:1",
		"matrix:a schedule:zz threads:1 chunk:1")

	// Chunk is numeric, not lexical.
	check([]Key{k("a", "s", 1, 128), k("a", "s", 1, 16), k("a", "s", 1, 2)},
		nil, nil,
		"matrix:a schedule:s threads:1 chunk:2",
		"matrix:a schedule:s threads:1 chunk:16",
		"matrix:a schedule:s threads:1 chunk:128")
}

func TestSortTotal(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	var keys []Key
	for i := 0; i < 200; i++ {
		keys = append(keys, NewKey(Schedule|Threads, "", []string{"static", "dynamic"}[r.Intn(2)], 1<<r.Intn(6), 0))
	}
	order := NewOrder("dynamic", "static")
	SortKeys(keys, nil, order)
	s := Sorter{nil, order}
	for i := 1; i < len(keys); i++ {
		if s.Less(keys[i], keys[i-1]) {
			t.Fatalf("keys[%d]=%v sorts before keys[%d]=%v", i, keys[i], i-1, keys[i-1])
		}
	}
}

func TestKeyProject(t *testing.T) {
	full := NewKey(Matrix|Schedule|Threads|Chunk, "cage4", "guided", 8, 16)
	series := full.Without(Threads)
	if got, want := series.String(), "matrix:cage4 schedule:guided chunk:16"; got != want {
		t.Errorf("Without(Threads) = %q, want %q", got, want)
	}
	if series == full.Project(Matrix|Schedule) {
		t.Errorf("keys with different fields compare equal")
	}
	if series != NewKey(Matrix|Schedule|Chunk, "cage4", "guided", 99, 16) {
		t.Errorf("NewKey did not drop unprojected threads")
	}
	if got := full.Project(Threads|Chunk).Values(); !reflect.DeepEqual(got, []string{"8", "16"}) {
		t.Errorf("Values() = %v", got)
	}
	if got := full.Get(Schedule); got != "guided" {
		t.Errorf("Get(Schedule) = %q", got)
	}
	if got := series.Get(Threads); got != "" {
		t.Errorf("Get on unprojected field = %q, want empty", got)
	}
	if got := (Key{}).String(); got != "<zero>" {
		t.Errorf("zero Key String() = %q", got)
	}
}

func TestOrder(t *testing.T) {
	var o Order
	for _, v := range []string{"b", "a", "b", "c"} {
		o.Observe(v)
	}
	if got := o.Values(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("Values() = %v", got)
	}
	if p, ok := o.Pos("c"); !ok || p != 2 {
		t.Errorf("Pos(c) = %d, %v", p, ok)
	}
	var nilOrder *Order
	if _, ok := nilOrder.Pos("x"); ok {
		t.Errorf("nil Order claims to have observed x")
	}
}
