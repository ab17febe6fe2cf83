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

package kv

// Entry is one stored key/value pair, used by the bulk-enumeration and
// range operations.
type Entry struct {
	Key   []byte
	Value []byte
}

// RangeOptions restricts an iteration to keys under Prefix. A nil/empty
// Prefix means "no restriction" (the whole keyspace).
type RangeOptions struct {
	Prefix []byte
}

// Getter is the read-side of the KV contract (§4.2). It is implemented by
// engines, snapshots, and overlays alike.
type Getter interface {
	// Get returns the stored value for k, or ok=false if absent.
	Get(k []byte, flags ReadFlags) (v []byte, ok bool, err error)
	// GetMany returns one result per input key, in the same order. Counts as
	// len(ks) reads.
	GetMany(ks [][]byte, flags ReadFlags) ([]OptionalValue, error)
	// Has reports whether k is present. Has(k) == (Get(k) returns ok=true).
	Has(k []byte) (bool, error)
	// GetAll returns every stored entry. If ordered, entries come back
	// sorted by common.CompareBytes; otherwise any permutation is valid.
	GetAll(ordered bool) ([]Entry, error)
	// GetAllKeys is GetAll without the values.
	GetAllKeys(ordered bool) ([][]byte, error)
	// GetAllValues is GetAll without the keys, preserving the order the
	// corresponding entries would have.
	GetAllValues(ordered bool) ([][]byte, error)
	// Seek returns the first entry with key >= k, restricted to opts.Prefix
	// if set. See §4.5 for the exact prefix-boundary semantics.
	Seek(k []byte, opts RangeOptions) (Entry, bool, error)
	// Next returns the first entry with key strictly > k, restricted to
	// opts.Prefix if set.
	Next(k []byte, opts RangeOptions) (Entry, bool, error)
	// Range returns every entry under opts.Prefix (or all entries if
	// opts.Prefix is empty), in order. An empty result is normal.
	Range(opts RangeOptions) ([]Entry, error)
}

// OptionalValue is one GetMany result slot.
type OptionalValue struct {
	Value []byte
	Ok    bool
}

// Putter is the write-side of the KV contract.
type Putter interface {
	// Put stores v under k, cloning v. Bumps writes.
	Put(k, v []byte, flags WriteFlags) error
	// Merge is engine-specific; reference engines reject it.
	Merge(k, v []byte, flags WriteFlags) error
	// Remove deletes k. Idempotent: removing an absent key is not an error.
	Remove(k []byte) error
}

// WriteOp is one operation inside an atomic WriteBatch call.
type WriteOp struct {
	Kind  WriteOpKind
	Key   []byte
	Value []byte
	Flags WriteFlags
}

// WriteOpKind distinguishes the three write-batch operation shapes.
type WriteOpKind int

const (
	WriteOpPut WriteOpKind = iota
	WriteOpRemove
	WriteOpMerge
)

// Snapshot is a scoped, read-only, point-in-time view. It reflects exactly
// the engine state at acquisition time for its entire lifetime; concurrent
// mutation of the underlying engine is invisible to it. Release is
// infallible and does not affect the parent engine's lifetime.
type Snapshot interface {
	Getter
	Release()
}

// WriteBatch is a scoped grouping of put/remove operations. The in-memory
// engine's batch is write-through (mutations apply immediately; Clear is a
// no-op on already-applied writes); other engines may defer commit to
// Release instead — both are conforming per §4.3. Release is infallible.
type WriteBatch interface {
	Putter
	// Clear drops any not-yet-applied writes. On a write-through batch this
	// is a no-op, since there is nothing pending.
	Clear()
	Release()
}

// Engine is the full KV contract of §4.2: every operation a concrete
// backend (in-memory, null, persistent stub, overlay) exposes.
type Engine interface {
	Getter
	Putter

	// Name returns the logical database name this engine was constructed
	// for, validated against the catalog at construction.
	Name() Name

	// CreateSnapshot acquires a scoped read-only view.
	CreateSnapshot() (Snapshot, error)
	// StartWriteBatch acquires a scoped write batch.
	StartWriteBatch() (WriteBatch, error)
	// WriteBatchOps applies ops atomically: either every op takes effect or
	// none does. Validation (encoding keys, cloning values, rejecting
	// unsupported kinds) happens before any storage mutation.
	WriteBatchOps(ops []WriteOp) error

	// Flush persists buffered writes. onlyWAL restricts the flush to the
	// write-ahead log where the engine has one. In-memory engines treat this
	// as a no-op.
	Flush(onlyWAL bool) error
	// Clear removes every entry.
	Clear() error
	// Compact triggers backend compaction. In-memory engines treat this as
	// a no-op.
	Compact() error
	// GatherMetric reports the current Metric snapshot.
	GatherMetric() Metric

	// Close releases every resource this engine owns. Safe to call once per
	// acquisition scope.
	Close()
}
