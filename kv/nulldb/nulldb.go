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

// Package nulldb is the null kv.Engine (C6): reads always miss, every write
// fails with kv.ErrNullDbWrites. Useful as a /dev/null-style placeholder
// where a kv.Engine is required but persistence is intentionally disabled.
package nulldb

import (
	"github.com/rs/zerolog/log"

	"github.com/erigontech/erigon-lib/kv"
)

// Engine is the null engine. The zero value is ready to use.
type Engine struct {
	name kv.Name
}

var _ kv.Engine = (*Engine)(nil)

func New(name kv.Name) *Engine { return &Engine{name: name} }

func (e *Engine) Name() kv.Name { return e.name }

func (e *Engine) Get(_ []byte, _ kv.ReadFlags) ([]byte, bool, error) { return nil, false, nil }

func (e *Engine) GetMany(ks [][]byte, _ kv.ReadFlags) ([]kv.OptionalValue, error) {
	return make([]kv.OptionalValue, len(ks)), nil
}

func (e *Engine) Has(_ []byte) (bool, error) { return false, nil }

func (e *Engine) GetAll(_ bool) ([]kv.Entry, error) { return nil, nil }

func (e *Engine) GetAllKeys(_ bool) ([][]byte, error) { return nil, nil }

func (e *Engine) GetAllValues(_ bool) ([][]byte, error) { return nil, nil }

func (e *Engine) Seek(_ []byte, _ kv.RangeOptions) (kv.Entry, bool, error) {
	return kv.Entry{}, false, nil
}

func (e *Engine) Next(_ []byte, _ kv.RangeOptions) (kv.Entry, bool, error) {
	return kv.Entry{}, false, nil
}

func (e *Engine) Range(_ kv.RangeOptions) ([]kv.Entry, error) { return nil, nil }

func (e *Engine) Put(_, _ []byte, _ kv.WriteFlags) error {
	log.Warn().Str("db", string(e.name)).Msg("write rejected by null engine")
	return kv.ErrNullDbWrites
}

func (e *Engine) Merge(_, _ []byte, _ kv.WriteFlags) error { return kv.ErrNullDbWrites }

func (e *Engine) Remove(_ []byte) error { return kv.ErrNullDbWrites }

func (e *Engine) CreateSnapshot() (kv.Snapshot, error) { return &snapshot{}, nil }

// StartWriteBatch itself fails: the null engine rejects startWriteBatch the
// same as every other write operation, per spec §4.4, rather than handing
// back a batch whose individual writes would fail later.
func (e *Engine) StartWriteBatch() (kv.WriteBatch, error) { return nil, kv.ErrNullDbWrites }

type snapshot struct{}

func (s *snapshot) Get(_ []byte, _ kv.ReadFlags) ([]byte, bool, error)  { return nil, false, nil }
func (s *snapshot) GetMany(ks [][]byte, _ kv.ReadFlags) ([]kv.OptionalValue, error) {
	return make([]kv.OptionalValue, len(ks)), nil
}
func (s *snapshot) Has(_ []byte) (bool, error)                          { return false, nil }
func (s *snapshot) GetAll(_ bool) ([]kv.Entry, error)                   { return nil, nil }
func (s *snapshot) GetAllKeys(_ bool) ([][]byte, error)                 { return nil, nil }
func (s *snapshot) GetAllValues(_ bool) ([][]byte, error)               { return nil, nil }
func (s *snapshot) Seek(_ []byte, _ kv.RangeOptions) (kv.Entry, bool, error) {
	return kv.Entry{}, false, nil
}
func (s *snapshot) Next(_ []byte, _ kv.RangeOptions) (kv.Entry, bool, error) {
	return kv.Entry{}, false, nil
}
func (s *snapshot) Range(_ kv.RangeOptions) ([]kv.Entry, error) { return nil, nil }
func (s *snapshot) Release()                                   {}

func (e *Engine) WriteBatchOps(ops []kv.WriteOp) error {
	if len(ops) == 0 {
		return nil
	}
	return kv.ErrNullDbWrites
}

func (e *Engine) Flush(_ bool) error { return nil }

func (e *Engine) Clear() error { return nil }

func (e *Engine) Compact() error { return nil }

func (e *Engine) GatherMetric() kv.Metric { return kv.Metric{} }

func (e *Engine) Close() {}
