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

// Package overlaydb is the overlay wrapper (C7): it reads through to a base
// kv.Engine and, when constructed with an overlay, routes writes into an
// in-memory map that shadows the base on read. The overlay itself is a
// memdb.Engine, reused rather than reimplemented, since its clone/ordering
// discipline is exactly what the overlay map needs.
package overlaydb

import (
	"github.com/erigontech/erigon-lib/common"
	"github.com/erigontech/erigon-lib/kv"
	"github.com/erigontech/erigon-lib/kv/memdb"
)

// Engine wraps base with an optional write overlay.
type Engine struct {
	base    kv.Engine
	overlay *memdb.Engine // nil means no overlay: read-only
}

var _ kv.Engine = (*Engine)(nil)

// New wraps base. If withOverlay is false, the engine is read-only: writes
// fail with kv.ErrReadOnlyDbWrites and reads pass straight through to base.
func New(base kv.Engine, withOverlay bool) *Engine {
	e := &Engine{base: base}
	if withOverlay {
		e.overlay = memdb.New(base.Name())
	}
	return e
}

func (e *Engine) Name() kv.Name { return e.base.Name() }

func (e *Engine) Get(k []byte, flags kv.ReadFlags) ([]byte, bool, error) {
	if e.overlay != nil {
		if v, ok, err := e.overlay.Get(k, flags); err != nil {
			return nil, false, err
		} else if ok {
			return v, true, nil
		}
	}
	return e.base.Get(k, flags)
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

// combinedView returns the union of base and overlay entries restricted to
// prefix, with overlay entries shadowing base entries of the same key.
func (e *Engine) combinedView(prefix []byte) ([]kv.Entry, error) {
	baseEntries, err := e.base.Range(kv.RangeOptions{Prefix: prefix})
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]kv.Entry, len(baseEntries))
	for _, ent := range baseEntries {
		byKey[string(ent.Key)] = ent
	}
	if e.overlay != nil {
		overEntries, err := e.overlay.Range(kv.RangeOptions{Prefix: prefix})
		if err != nil {
			return nil, err
		}
		for _, ent := range overEntries {
			byKey[string(ent.Key)] = ent
		}
	}
	out := make([]kv.Entry, 0, len(byKey))
	for _, ent := range byKey {
		out = append(out, ent)
	}
	return out, nil
}

func sortEntries(entries []kv.Entry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && common.Less(entries[j].Key, entries[j-1].Key); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

func (e *Engine) GetAll(ordered bool) ([]kv.Entry, error) {
	entries, err := e.combinedView(nil)
	if err != nil {
		return nil, err
	}
	if ordered {
		sortEntries(entries)
	}
	return entries, nil
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

func (e *Engine) Seek(k []byte, opts kv.RangeOptions) (kv.Entry, bool, error) {
	entries, err := e.combinedView(opts.Prefix)
	if err != nil {
		return kv.Entry{}, false, err
	}
	sortEntries(entries)
	for _, ent := range entries {
		if !common.Less(ent.Key, k) {
			return ent, true, nil
		}
	}
	return kv.Entry{}, false, nil
}

func (e *Engine) Next(k []byte, opts kv.RangeOptions) (kv.Entry, bool, error) {
	entries, err := e.combinedView(opts.Prefix)
	if err != nil {
		return kv.Entry{}, false, err
	}
	sortEntries(entries)
	for _, ent := range entries {
		if common.CompareBytes(ent.Key, k) > 0 {
			return ent, true, nil
		}
	}
	return kv.Entry{}, false, nil
}

func (e *Engine) Range(opts kv.RangeOptions) ([]kv.Entry, error) {
	entries, err := e.combinedView(opts.Prefix)
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

func (e *Engine) Put(k, v []byte, flags kv.WriteFlags) error {
	if e.overlay == nil {
		return kv.ErrReadOnlyDbWrites
	}
	return e.overlay.Put(k, v, flags)
}

// Merge always fails: neither the base write path nor the overlay is
// reachable through merge.
func (e *Engine) Merge(_, _ []byte, _ kv.WriteFlags) error {
	return kv.ErrReadOnlyDbMerge
}

func (e *Engine) Remove(k []byte) error {
	if e.overlay == nil {
		return kv.ErrReadOnlyDbWrites
	}
	return e.overlay.Remove(k)
}

// CreateSnapshot snapshots base and, if present, deep-clones the overlay; the
// returned snapshot reads through the combined view frozen at this moment.
// Later mutation of the overlay (including ClearTempChanges) does not affect
// it.
func (e *Engine) CreateSnapshot() (kv.Snapshot, error) {
	baseSnap, err := e.base.CreateSnapshot()
	if err != nil {
		return nil, err
	}
	var overlaySnap kv.Snapshot
	if e.overlay != nil {
		overlaySnap, err = e.overlay.CreateSnapshot()
		if err != nil {
			baseSnap.Release()
			return nil, err
		}
	}
	return &snapshot{base: baseSnap, overlay: overlaySnap}, nil
}

type snapshot struct {
	base    kv.Snapshot
	overlay kv.Snapshot // nil if the engine had no overlay
}

func (s *snapshot) Get(k []byte, flags kv.ReadFlags) ([]byte, bool, error) {
	if s.overlay != nil {
		if v, ok, err := s.overlay.Get(k, flags); err != nil {
			return nil, false, err
		} else if ok {
			return v, true, nil
		}
	}
	return s.base.Get(k, flags)
}

func (s *snapshot) GetMany(ks [][]byte, flags kv.ReadFlags) ([]kv.OptionalValue, error) {
	out := make([]kv.OptionalValue, len(ks))
	for i, k := range ks {
		v, ok, err := s.Get(k, flags)
		if err != nil {
			return nil, err
		}
		out[i] = kv.OptionalValue{Value: v, Ok: ok}
	}
	return out, nil
}

func (s *snapshot) Has(k []byte) (bool, error) {
	_, ok, err := s.Get(k, kv.ReadNone)
	return ok, err
}

func (s *snapshot) combinedView(prefix []byte) ([]kv.Entry, error) {
	baseEntries, err := s.base.Range(kv.RangeOptions{Prefix: prefix})
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]kv.Entry, len(baseEntries))
	for _, ent := range baseEntries {
		byKey[string(ent.Key)] = ent
	}
	if s.overlay != nil {
		overEntries, err := s.overlay.Range(kv.RangeOptions{Prefix: prefix})
		if err != nil {
			return nil, err
		}
		for _, ent := range overEntries {
			byKey[string(ent.Key)] = ent
		}
	}
	out := make([]kv.Entry, 0, len(byKey))
	for _, ent := range byKey {
		out = append(out, ent)
	}
	return out, nil
}

func (s *snapshot) GetAll(ordered bool) ([]kv.Entry, error) {
	entries, err := s.combinedView(nil)
	if err != nil {
		return nil, err
	}
	if ordered {
		sortEntries(entries)
	}
	return entries, nil
}

func (s *snapshot) GetAllKeys(ordered bool) ([][]byte, error) {
	all, err := s.GetAll(ordered)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(all))
	for i, ent := range all {
		keys[i] = ent.Key
	}
	return keys, nil
}

func (s *snapshot) GetAllValues(ordered bool) ([][]byte, error) {
	all, err := s.GetAll(ordered)
	if err != nil {
		return nil, err
	}
	values := make([][]byte, len(all))
	for i, ent := range all {
		values[i] = ent.Value
	}
	return values, nil
}

func (s *snapshot) Seek(k []byte, opts kv.RangeOptions) (kv.Entry, bool, error) {
	entries, err := s.combinedView(opts.Prefix)
	if err != nil {
		return kv.Entry{}, false, err
	}
	sortEntries(entries)
	for _, ent := range entries {
		if !common.Less(ent.Key, k) {
			return ent, true, nil
		}
	}
	return kv.Entry{}, false, nil
}

func (s *snapshot) Next(k []byte, opts kv.RangeOptions) (kv.Entry, bool, error) {
	entries, err := s.combinedView(opts.Prefix)
	if err != nil {
		return kv.Entry{}, false, err
	}
	sortEntries(entries)
	for _, ent := range entries {
		if common.CompareBytes(ent.Key, k) > 0 {
			return ent, true, nil
		}
	}
	return kv.Entry{}, false, nil
}

func (s *snapshot) Range(opts kv.RangeOptions) ([]kv.Entry, error) {
	entries, err := s.combinedView(opts.Prefix)
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

func (s *snapshot) Release() {
	s.base.Release()
	if s.overlay != nil {
		s.overlay.Release()
	}
}

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

// WriteBatchOps is atomic: if any op is a merge, the whole batch is rejected
// and the overlay is left unchanged.
func (e *Engine) WriteBatchOps(ops []kv.WriteOp) error {
	if e.overlay == nil {
		if len(ops) == 0 {
			return nil
		}
		return kv.ErrReadOnlyDbWrites
	}
	for _, op := range ops {
		if op.Kind == kv.WriteOpMerge {
			return kv.ErrReadOnlyDbMerge
		}
	}
	return e.overlay.WriteBatchOps(ops)
}

// ClearTempChanges drops every overlay entry without touching the base
// engine. A no-op when the engine has no overlay.
func (e *Engine) ClearTempChanges() error {
	if e.overlay == nil {
		return nil
	}
	return e.overlay.Clear()
}

// Clear always fails, with or without an overlay: the overlay wrapper never
// supports wiping the combined view in one call.
func (e *Engine) Clear() error { return kv.ErrReadOnlyDbWrites }

func (e *Engine) Flush(_ bool) error { return nil }

func (e *Engine) Compact() error { return nil }

func (e *Engine) GatherMetric() kv.Metric { return e.base.GatherMetric() }

func (e *Engine) Close() {
	e.base.Close()
	if e.overlay != nil {
		e.overlay.Close()
	}
}
