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

package nulldb

import (
	"testing"

	"github.com/erigontech/erigon-lib/kv"
)

func TestReadsAlwaysMiss(t *testing.T) {
	e := New(kv.State)
	if _, ok, err := e.Get([]byte("k"), kv.ReadNone); ok || err != nil {
		t.Fatalf("expected miss with no error, got ok=%v err=%v", ok, err)
	}
	if has, err := e.Has([]byte("k")); has || err != nil {
		t.Fatalf("expected Has=false, got %v (err=%v)", has, err)
	}
	all, err := e.GetAll(true)
	if err != nil || len(all) != 0 {
		t.Fatalf("expected empty GetAll, got %v (err=%v)", all, err)
	}
}

func TestWritesAlwaysFail(t *testing.T) {
	e := New(kv.State)
	if err := e.Put([]byte("k"), []byte("v"), kv.WriteNone); err != kv.ErrNullDbWrites {
		t.Fatalf("expected ErrNullDbWrites, got %v", err)
	}
	if err := e.Merge([]byte("k"), []byte("v"), kv.WriteNone); err != kv.ErrNullDbWrites {
		t.Fatalf("expected ErrNullDbWrites, got %v", err)
	}
	if err := e.Remove([]byte("k")); err != kv.ErrNullDbWrites {
		t.Fatalf("expected ErrNullDbWrites, got %v", err)
	}
}

func TestStartWriteBatchFails(t *testing.T) {
	e := New(kv.State)
	if batch, err := e.StartWriteBatch(); batch != nil || err != kv.ErrNullDbWrites {
		t.Fatalf("expected nil batch and ErrNullDbWrites, got batch=%v err=%v", batch, err)
	}
}

func TestWriteBatchOpsEmptyIsNoop(t *testing.T) {
	e := New(kv.State)
	if err := e.WriteBatchOps(nil); err != nil {
		t.Fatalf("empty batch should not fail: %v", err)
	}
}

func TestWriteBatchOpsNonEmptyFails(t *testing.T) {
	e := New(kv.State)
	ops := []kv.WriteOp{{Kind: kv.WriteOpPut, Key: []byte("k"), Value: []byte("v")}}
	if err := e.WriteBatchOps(ops); err != kv.ErrNullDbWrites {
		t.Fatalf("expected ErrNullDbWrites, got %v", err)
	}
}

func TestMaintenanceOpsAreNoops(t *testing.T) {
	e := New(kv.State)
	if err := e.Flush(false); err != nil {
		t.Fatal(err)
	}
	if err := e.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := e.Compact(); err != nil {
		t.Fatal(err)
	}
	if m := e.GatherMetric(); m != (kv.Metric{}) {
		t.Fatalf("expected zero metric, got %+v", m)
	}
}
