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

// Package memdb is the reference in-memory kv.Engine (C5): a hex-indexed
// dictionary for O(1) point lookups, with a btree.BTreeG ordered index
// alongside it for seek/next/range. Every stored key/value is cloned on the
// way in and out, so callers can never observe or corrupt internal state
// through a returned slice.
package memdb

import (
	"sync"
	"sync/atomic"

	"github.com/google/btree"
	"github.com/rs/zerolog/log"

	"github.com/erigontech/erigon-lib/common"
	"github.com/erigontech/erigon-lib/kv"
)

const btreeDegree = 32

// entry is the ordered index's element type. Ordering is entirely
// common.CompareBytes on Key; Value rides along so range scans don't need a
// second dictionary lookup per hit.
type entry struct {
	Key   []byte
	Value []byte
}

func lessEntry(a, b entry) bool { return common.Less(a.Key, b.Key) }

// Engine is the in-memory reference kv.Engine implementation.
type Engine struct {
	mu     sync.RWMutex
	name   kv.Name
	dict   map[string][]byte // hex(key) -> value, for O(1) point access
	order  *btree.BTreeG[entry]
	reads  atomic.Uint64
	writes atomic.Uint64
}

var _ kv.Engine = (*Engine)(nil)

// New constructs an empty in-memory engine for the given name. name is not
// validated against the catalog here; kv.DbConfig.Validate is the
// construction-time gate (see kvprovider).
func New(name kv.Name) *Engine {
	return &Engine{
		name:  name,
		dict:  make(map[string][]byte),
		order: btree.NewG(btreeDegree, lessEntry),
	}
}

func (e *Engine) Name() kv.Name { return e.name }

func (e *Engine) Get(k []byte, _ kv.ReadFlags) ([]byte, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	e.reads.Add(1)
	v, ok := e.dict[common.KeyToHex(k)]
	if !ok {
		return nil, false, nil
	}
	return common.CloneBytes(v), true, nil
}

func (e *Engine) GetMany(ks [][]byte, flags kv.ReadFlags) ([]kv.OptionalValue, error) {
	out := make([]kv.OptionalValue, len(ks))
	for i, k := range ks {
		v, ok, err := e.Get(k, flags)
		if err != nil {
			return nil, err
		}
		out[i] = kv.OptionalValue{Value: v, Ok: ok}
	}
	return out, nil
}

func (e *Engine) Has(k []byte) (bool, error) {
	_, ok, err := e.Get(k, kv.ReadNone)
	return ok, err
}

func (e *Engine) GetAll(ordered bool) ([]kv.Entry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	e.reads.Add(1)
	out := make([]kv.Entry, 0, len(e.dict))
	if ordered {
		e.order.Ascend(func(it entry) bool {
			out = append(out, kv.Entry{Key: common.CloneBytes(it.Key), Value: common.CloneBytes(it.Value)})
			return true
		})
		return out, nil
	}
	for hexKey, v := range e.dict {
		rawKey, ok := common.HexToKey(hexKey)
		if !ok {
			continue
		}
		out = append(out, kv.Entry{Key: rawKey, Value: common.CloneBytes(v)})
	}
	return out, nil
}

func (e *Engine) GetAllKeys(ordered bool) ([][]byte, error) {
	all, err := e.GetAll(ordered)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(all))
	for i, ent := range all {
		keys[i] = ent.Key
	}
	return keys, nil
}

func (e *Engine) GetAllValues(ordered bool) ([][]byte, error) {
	all, err := e.GetAll(ordered)
	if err != nil {
		return nil, err
	}
	values := make([][]byte, len(all))
	for i, ent := range all {
		values[i] = ent.Value
	}
	return values, nil
}

// Seek returns the first entry with key >= k restricted to opts.Prefix. The
// scan simply starts at k: under §3's tie-break (a longer sequence sorts
// before its own strict prefix), a prefix-matching subset is not bounded by a
// fixed pivot derived from opts.Prefix the way it would be under plain
// lexicographic order (an extension of opts.Prefix sorts before opts.Prefix
// itself, not after it), so opts.Prefix cannot be combined with k into a
// single floor. Starting from k and filtering by HasPrefix while continuing
// past non-matches is correct regardless: the matching subset forms one
// contiguous run in ascending order (it occupies exactly the slot
// opts.Prefix would occupy under plain lexicographic order), so the first
// match encountered scanning forward from k is the answer.
func (e *Engine) Seek(k []byte, opts kv.RangeOptions) (kv.Entry, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	e.reads.Add(1)
	var found entry
	ok := false
	e.order.AscendGreaterOrEqual(entry{Key: k}, func(it entry) bool {
		if !common.HasPrefix(it.Key, opts.Prefix) {
			return true
		}
		found, ok = it, true
		return false
	})
	if !ok {
		return kv.Entry{}, false, nil
	}
	return kv.Entry{Key: common.CloneBytes(found.Key), Value: common.CloneBytes(found.Value)}, true, nil
}

// Next returns the first entry with key strictly > k, restricted to
// opts.Prefix.
func (e *Engine) Next(k []byte, opts kv.RangeOptions) (kv.Entry, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	e.reads.Add(1)
	var found entry
	ok := false
	e.order.AscendGreaterOrEqual(entry{Key: k}, func(it entry) bool {
		if common.CompareBytes(it.Key, k) == 0 {
			return true
		}
		if !common.HasPrefix(it.Key, opts.Prefix) {
			return true
		}
		found, ok = it, true
		return false
	})
	if !ok {
		return kv.Entry{}, false, nil
	}
	return kv.Entry{Key: common.CloneBytes(found.Key), Value: common.CloneBytes(found.Value)}, true, nil
}

// Range returns every entry matching opts.Prefix, in ascending order. Under
// §3's tie-break, an extension of opts.Prefix sorts before opts.Prefix
// itself, so the matching subset cannot be reached by ascending from a pivot
// of opts.Prefix (AscendGreaterOrEqual(opts.Prefix) would skip straight past
// every one of its own extensions). The matching subset is still contiguous
// — it occupies exactly the slot opts.Prefix would occupy under plain
// lexicographic order relative to non-matching keys — so a full ascent that
// collects while matching and stops once it has matched and then stopped
// matching is correct.
func (e *Engine) Range(opts kv.RangeOptions) ([]kv.Entry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	e.reads.Add(1)
	out := []kv.Entry{}
	matched := false
	e.order.Ascend(func(it entry) bool {
		if !common.HasPrefix(it.Key, opts.Prefix) {
			return !matched
		}
		matched = true
		out = append(out, kv.Entry{Key: common.CloneBytes(it.Key), Value: common.CloneBytes(it.Value)})
		return true
	})
	return out, nil
}

func (e *Engine) Put(k, v []byte, _ kv.WriteFlags) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.put(k, v)
	return nil
}

func (e *Engine) put(k, v []byte) {
	e.writes.Add(1)
	log.Debug().Str("db", string(e.name)).Int("keyLen", len(k)).Int("valLen", len(v)).Msg("memdb put")
	key := common.CloneBytes(k)
	val := common.CloneBytes(v)
	hexKey := common.KeyToHex(key)
	if _, existed := e.dict[hexKey]; existed {
		e.order.Delete(entry{Key: key})
	}
	e.dict[hexKey] = val
	e.order.ReplaceOrInsert(entry{Key: key, Value: val})
}

// Merge is not supported by the in-memory engine.
func (e *Engine) Merge(_, _ []byte, _ kv.WriteFlags) error {
	return kv.ErrMergeUnsupported
}

func (e *Engine) Remove(k []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.remove(k)
	return nil
}

func (e *Engine) remove(k []byte) {
	e.writes.Add(1)
	hexKey := common.KeyToHex(k)
	if _, ok := e.dict[hexKey]; !ok {
		return
	}
	delete(e.dict, hexKey)
	e.order.Delete(entry{Key: k})
}

// CreateSnapshot takes an eager deep copy of the current dictionary. The
// snapshot is unaffected by subsequent mutation of e.
func (e *Engine) CreateSnapshot() (kv.Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	snap := New(e.name)
	e.order.Ascend(func(it entry) bool {
		snap.put(it.Key, it.Value)
		return true
	})
	return &snapshot{eng: snap}, nil
}

type snapshot struct {
	eng *Engine
}

func (s *snapshot) Get(k []byte, flags kv.ReadFlags) ([]byte, bool, error) { return s.eng.Get(k, flags) }
func (s *snapshot) GetMany(ks [][]byte, flags kv.ReadFlags) ([]kv.OptionalValue, error) {
	return s.eng.GetMany(ks, flags)
}
func (s *snapshot) Has(k []byte) (bool, error)                     { return s.eng.Has(k) }
func (s *snapshot) GetAll(ordered bool) ([]kv.Entry, error)        { return s.eng.GetAll(ordered) }
func (s *snapshot) GetAllKeys(ordered bool) ([][]byte, error)      { return s.eng.GetAllKeys(ordered) }
func (s *snapshot) GetAllValues(ordered bool) ([][]byte, error)    { return s.eng.GetAllValues(ordered) }
func (s *snapshot) Seek(k []byte, opts kv.RangeOptions) (kv.Entry, bool, error) {
	return s.eng.Seek(k, opts)
}
func (s *snapshot) Next(k []byte, opts kv.RangeOptions) (kv.Entry, bool, error) {
	return s.eng.Next(k, opts)
}
func (s *snapshot) Range(opts kv.RangeOptions) ([]kv.Entry, error) { return s.eng.Range(opts) }
func (s *snapshot) Release()                                      {}

// StartWriteBatch returns a write-through batch: every Put/Remove applies to
// e immediately. Clear is a no-op since nothing is ever pending.
func (e *Engine) StartWriteBatch() (kv.WriteBatch, error) {
	return &writeBatch{eng: e}, nil
}

type writeBatch struct {
	eng *Engine
}

func (b *writeBatch) Put(k, v []byte, flags kv.WriteFlags) error { return b.eng.Put(k, v, flags) }
func (b *writeBatch) Merge(k, v []byte, flags kv.WriteFlags) error {
	return b.eng.Merge(k, v, flags)
}
func (b *writeBatch) Remove(k []byte) error { return b.eng.Remove(k) }
func (b *writeBatch) Clear()                {}
func (b *writeBatch) Release()              {}

// WriteBatchOps applies every op atomically: validated first (rejecting any
// WriteOpMerge, since the in-memory engine never supports merge), then
// applied in order. A validation failure leaves e untouched.
func (e *Engine) WriteBatchOps(ops []kv.WriteOp) error {
	for _, op := range ops {
		if op.Kind == kv.WriteOpMerge {
			return kv.ErrMergeUnsupported
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, op := range ops {
		switch op.Kind {
		case kv.WriteOpPut:
			e.put(op.Key, op.Value)
		case kv.WriteOpRemove:
			e.remove(op.Key)
		}
	}
	return nil
}

func (e *Engine) Flush(_ bool) error { return nil }

func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dict = make(map[string][]byte)
	e.order = btree.NewG(btreeDegree, lessEntry)
	return nil
}

func (e *Engine) Compact() error { return nil }

func (e *Engine) GatherMetric() kv.Metric {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return kv.Metric{
		Size:        uint64(len(e.dict)),
		TotalReads:  e.reads.Load(),
		TotalWrites: e.writes.Load(),
	}
}

func (e *Engine) Close() {}
