// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package overlaydb

import (
	"testing"

	"github.com/erigontech/erigon-lib/kv"
	"github.com/erigontech/erigon-lib/kv/memdb"
)

func baseWith(t *testing.T, kvs map[string]string) *memdb.Engine {
	t.Helper()
	base := memdb.New(kv.State)
	for k, v := range kvs {
		if err := base.Put([]byte(k), []byte(v), kv.WriteNone); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func TestWithoutOverlayIsReadOnly(t *testing.T) {
	base := baseWith(t, map[string]string{"k1": "v1"})
	e := New(base, false)

	v, ok, err := e.Get([]byte("k1"), kv.ReadNone)
	if err != nil || !ok || string(v) != "v1" {
		t.Fatalf("read-through failed: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := e.Put([]byte("k2"), []byte("v2"), kv.WriteNone); err != kv.ErrReadOnlyDbWrites {
		t.Fatalf("expected ErrReadOnlyDbWrites, got %v", err)
	}
	if err := e.Remove([]byte("k1")); err != kv.ErrReadOnlyDbWrites {
		t.Fatalf("expected ErrReadOnlyDbWrites, got %v", err)
	}
}

func TestOverlayShadowsBase(t *testing.T) {
	base := baseWith(t, map[string]string{"k1": "base"})
	e := New(base, true)

	if err := e.Put([]byte("k1"), []byte("overlay"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	v, ok, err := e.Get([]byte("k1"), kv.ReadNone)
	if err != nil || !ok || string(v) != "overlay" {
		t.Fatalf("overlay should shadow base: v=%q ok=%v err=%v", v, ok, err)
	}

	baseVal, _, _ := base.Get([]byte("k1"), kv.ReadNone)
	if string(baseVal) != "base" {
		t.Fatalf("base must be untouched by overlay writes, got %q", baseVal)
	}
}

func TestMergeAlwaysFails(t *testing.T) {
	base := baseWith(t, nil)
	for _, withOverlay := range []bool{false, true} {
		e := New(base, withOverlay)
		if err := e.Merge([]byte("k"), []byte("v"), kv.WriteNone); err != kv.ErrReadOnlyDbMerge {
			t.Fatalf("withOverlay=%v: expected ErrReadOnlyDbMerge, got %v", withOverlay, err)
		}
	}
}

func TestClearAlwaysFails(t *testing.T) {
	base := baseWith(t, nil)
	for _, withOverlay := range []bool{false, true} {
		e := New(base, withOverlay)
		if err := e.Clear(); err == nil {
			t.Fatalf("withOverlay=%v: expected Clear to fail", withOverlay)
		}
	}
}

func TestGetAllUnionsOverlayAndBase(t *testing.T) {
	base := baseWith(t, map[string]string{"a": "base-a", "b": "base-b"})
	e := New(base, true)
	if err := e.Put([]byte("a"), []byte("overlay-a"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	if err := e.Put([]byte("c"), []byte("overlay-c"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}

	all, err := e.GetAll(true)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, ent := range all {
		got[string(ent.Key)] = string(ent.Value)
	}
	want := map[string]string{"a": "overlay-a", "b": "base-b", "c": "overlay-c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("key %q: got %q, want %q", k, got[k], v)
		}
	}
}

func TestWriteBatchOpsRejectsMergeAndLeavesOverlayUnchanged(t *testing.T) {
	base := baseWith(t, nil)
	e := New(base, true)
	ops := []kv.WriteOp{
		{Kind: kv.WriteOpPut, Key: []byte("k1"), Value: []byte("v1")},
		{Kind: kv.WriteOpMerge, Key: []byte("k2"), Value: []byte("v2")},
	}
	if err := e.WriteBatchOps(ops); err != kv.ErrReadOnlyDbMerge {
		t.Fatalf("expected ErrReadOnlyDbMerge, got %v", err)
	}
	if _, ok, _ := e.Get([]byte("k1"), kv.ReadNone); ok {
		t.Fatalf("overlay must be unchanged after a rejected batch")
	}
}

func TestClearTempChangesDropsOverlayOnly(t *testing.T) {
	base := baseWith(t, map[string]string{"k1": "base"})
	e := New(base, true)
	if err := e.Put([]byte("k1"), []byte("overlay"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	if err := e.Put([]byte("k2"), []byte("overlay-only"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	if err := e.ClearTempChanges(); err != nil {
		t.Fatal(err)
	}
	v, ok, err := e.Get([]byte("k1"), kv.ReadNone)
	if err != nil || !ok || string(v) != "base" {
		t.Fatalf("k1 should read through to base after clearing overlay: v=%q ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := e.Get([]byte("k2"), kv.ReadNone); ok {
		t.Fatalf("k2 was overlay-only and should be gone")
	}
}

func TestSnapshotIsUnaffectedByLaterClearTempChanges(t *testing.T) {
	base := baseWith(t, map[string]string{"k1": "base"})
	e := New(base, true)
	if err := e.Put([]byte("k1"), []byte("overlay"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	snap, err := e.CreateSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	defer snap.Release()

	if err := e.ClearTempChanges(); err != nil {
		t.Fatal(err)
	}

	v, ok, err := snap.Get([]byte("k1"), kv.ReadNone)
	if err != nil || !ok || string(v) != "overlay" {
		t.Fatalf("snapshot should keep the combined view at acquisition time: v=%q ok=%v err=%v", v, ok, err)
	}
}
