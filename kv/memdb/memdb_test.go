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

package memdb

import (
	"testing"

	"github.com/erigontech/erigon-lib/kv"
)

func TestGetPutRoundTrip(t *testing.T) {
	e := New(kv.State)
	if _, ok, _ := e.Get([]byte("missing"), kv.ReadNone); ok {
		t.Fatalf("expected miss on empty engine")
	}
	if err := e.Put([]byte("k1"), []byte("v1"), kv.WriteNone); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, ok, err := e.Get([]byte("k1"), kv.ReadNone)
	if err != nil || !ok || string(v) != "v1" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestPutClonesInput(t *testing.T) {
	e := New(kv.State)
	k := []byte("k1")
	v := []byte("v1")
	if err := e.Put(k, v, kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	v[0] = 'X'
	got, _, _ := e.Get([]byte("k1"), kv.ReadNone)
	if string(got) != "v1" {
		t.Fatalf("mutating caller slice leaked into store: %q", got)
	}
}

func TestGetClonesOutput(t *testing.T) {
	e := New(kv.State)
	if err := e.Put([]byte("k1"), []byte("v1"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	got, _, _ := e.Get([]byte("k1"), kv.ReadNone)
	got[0] = 'X'
	got2, _, _ := e.Get([]byte("k1"), kv.ReadNone)
	if string(got2) != "v1" {
		t.Fatalf("mutating returned slice leaked into store: %q", got2)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	e := New(kv.State)
	if err := e.Remove([]byte("absent")); err != nil {
		t.Fatalf("remove of absent key must not error: %v", err)
	}
	if err := e.Put([]byte("k1"), []byte("v1"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	if err := e.Remove([]byte("k1")); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := e.Get([]byte("k1"), kv.ReadNone); ok {
		t.Fatalf("expected miss after remove")
	}
	if err := e.Remove([]byte("k1")); err != nil {
		t.Fatalf("second remove must not error: %v", err)
	}
}

func TestMergeUnsupported(t *testing.T) {
	e := New(kv.State)
	err := e.Merge([]byte("k"), []byte("v"), kv.WriteNone)
	if err != kv.ErrMergeUnsupported {
		t.Fatalf("expected ErrMergeUnsupported, got %v", err)
	}
}

func TestOrderedIterationUsesByteOrderTieBreak(t *testing.T) {
	e := New(kv.State)
	for _, k := range []string{"a", "ab", "abc", "b"} {
		if err := e.Put([]byte(k), []byte(k), kv.WriteNone); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := e.GetAllKeys(true)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"abc", "ab", "a", "b"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i, k := range keys {
		if string(k) != want[i] {
			t.Fatalf("index %d: got %q, want %q (full: %v)", i, k, want[i], keys)
		}
	}
}

func TestSeekAndNext(t *testing.T) {
	e := New(kv.State)
	for _, k := range []string{"a", "c", "e"} {
		if err := e.Put([]byte(k), []byte(k), kv.WriteNone); err != nil {
			t.Fatal(err)
		}
	}
	ent, ok, err := e.Seek([]byte("b"), kv.RangeOptions{})
	if err != nil || !ok || string(ent.Key) != "c" {
		t.Fatalf("seek(b): ent=%+v ok=%v err=%v", ent, ok, err)
	}
	ent, ok, err = e.Next([]byte("c"), kv.RangeOptions{})
	if err != nil || !ok || string(ent.Key) != "e" {
		t.Fatalf("next(c): ent=%+v ok=%v err=%v", ent, ok, err)
	}
	_, ok, err = e.Next([]byte("e"), kv.RangeOptions{})
	if err != nil || ok {
		t.Fatalf("next(e) should have no successor: ok=%v err=%v", ok, err)
	}
}

func TestRangeRestrictsToPrefix(t *testing.T) {
	e := New(kv.State)
	for _, k := range []string{"app", "apple", "apply", "banana"} {
		if err := e.Put([]byte(k), []byte(k), kv.WriteNone); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := e.Range(kv.RangeOptions{Prefix: []byte("app")})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries under prefix 'app', got %d: %+v", len(entries), entries)
	}
	for _, ent := range entries {
		if string(ent.Key) == "banana" {
			t.Fatalf("banana should not match prefix 'app'")
		}
	}
}

func TestWriteBatchOpsAtomicRejectsMerge(t *testing.T) {
	e := New(kv.State)
	ops := []kv.WriteOp{
		{Kind: kv.WriteOpPut, Key: []byte("k1"), Value: []byte("v1")},
		{Kind: kv.WriteOpMerge, Key: []byte("k2"), Value: []byte("v2")},
	}
	err := e.WriteBatchOps(ops)
	if err != kv.ErrMergeUnsupported {
		t.Fatalf("expected ErrMergeUnsupported, got %v", err)
	}
	if _, ok, _ := e.Get([]byte("k1"), kv.ReadNone); ok {
		t.Fatalf("k1 must not have been applied: batch should be all-or-nothing")
	}
}

func TestWriteBatchOpsAppliesInOrder(t *testing.T) {
	e := New(kv.State)
	ops := []kv.WriteOp{
		{Kind: kv.WriteOpPut, Key: []byte("k1"), Value: []byte("v1")},
		{Kind: kv.WriteOpPut, Key: []byte("k1"), Value: []byte("v2")},
		{Kind: kv.WriteOpRemove, Key: []byte("k1")},
		{Kind: kv.WriteOpPut, Key: []byte("k2"), Value: []byte("v3")},
	}
	if err := e.WriteBatchOps(ops); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := e.Get([]byte("k1"), kv.ReadNone); ok {
		t.Fatalf("k1 should have been removed last")
	}
	v, ok, _ := e.Get([]byte("k2"), kv.ReadNone)
	if !ok || string(v) != "v3" {
		t.Fatalf("k2=%q ok=%v", v, ok)
	}
}

func TestSnapshotIsIsolatedFromLaterWrites(t *testing.T) {
	e := New(kv.State)
	if err := e.Put([]byte("k1"), []byte("v1"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	snap, err := e.CreateSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	defer snap.Release()

	if err := e.Put([]byte("k1"), []byte("v2"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	if err := e.Put([]byte("k2"), []byte("v3"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}

	v, ok, err := snap.Get([]byte("k1"), kv.ReadNone)
	if err != nil || !ok || string(v) != "v1" {
		t.Fatalf("snapshot should see pre-mutation value: v=%q ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := snap.Get([]byte("k2"), kv.ReadNone); ok {
		t.Fatalf("snapshot should not see keys written after acquisition")
	}
}

func TestWriteBatchIsWriteThrough(t *testing.T) {
	e := New(kv.State)
	wb, err := e.StartWriteBatch()
	if err != nil {
		t.Fatal(err)
	}
	if err := wb.Put([]byte("k1"), []byte("v1"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := e.Get([]byte("k1"), kv.ReadNone); !ok || string(v) != "v1" {
		t.Fatalf("write-through batch should apply immediately to the engine: v=%q ok=%v", v, ok)
	}
	wb.Clear()
	if _, ok, _ := e.Get([]byte("k1"), kv.ReadNone); !ok {
		t.Fatalf("Clear on a write-through batch must not undo already-applied writes")
	}
	wb.Release()
}

func TestGatherMetricTracksCountsAndSize(t *testing.T) {
	e := New(kv.State)
	if err := e.Put([]byte("k1"), []byte("v1"), kv.WriteNone); err != nil {
		t.Fatal(err)
	}
	if _, _, err := e.Get([]byte("k1"), kv.ReadNone); err != nil {
		t.Fatal(err)
	}
	m := e.GatherMetric()
	if m.Size != 1 {
		t.Fatalf("expected size 1, got %d", m.Size)
	}
	if m.TotalWrites == 0 {
		t.Fatalf("expected nonzero writes")
	}
	if m.TotalReads == 0 {
		t.Fatalf("expected nonzero reads")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	e := New(kv.State)
	for _, k := range []string{"a", "b", "c"} {
		if err := e.Put([]byte(k), []byte(k), kv.WriteNone); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.Clear(); err != nil {
		t.Fatal(err)
	}
	all, err := e.GetAll(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty engine after Clear, got %d entries", len(all))
	}
}
