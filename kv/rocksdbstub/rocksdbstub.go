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

// Package rocksdbstub is the persistent-engine stub (C6): it accepts a
// realistic on-disk configuration (path, cache size, write-buffer size) but
// every operation fails with kv.ErrStubNotImplemented, naming the operation
// that was attempted. It exists so the factory/provider layer (C8) has a
// second, genuinely different engine kind to resolve by name, without this
// module taking on an actual RocksDB/CGo dependency.
package rocksdbstub

import (
	"github.com/c2h5oh/datasize"
	"github.com/rs/zerolog/log"

	"github.com/erigontech/erigon-lib/kv"
)

// Config is the stub's construction-time configuration. CacheSize and
// WriteBufferSize are human-readable sizes ("512MB", "64KB") parsed via
// datasize.ByteSize, matching the sizing knobs a real RocksDB-backed engine
// would expose.
type Config struct {
	DbConfig        kv.DbConfig
	CacheSize       datasize.ByteSize
	WriteBufferSize datasize.ByteSize
}

// Engine is the persistent-engine stub.
type Engine struct {
	cfg Config
}

var _ kv.Engine = (*Engine)(nil)

// New validates cfg and constructs the stub. Validation is real even though
// every subsequent operation fails: a caller should learn about a malformed
// config at construction, not on first use.
func New(cfg Config) (*Engine, error) {
	if err := cfg.DbConfig.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

func (e *Engine) Name() kv.Name { return e.cfg.DbConfig.Name }

func (e *Engine) Get(_ []byte, _ kv.ReadFlags) ([]byte, bool, error) {
	log.Warn().Str("db", string(e.cfg.DbConfig.Name)).Str("op", "Get").Msg("persistent-engine stub does not implement this operation")
	return nil, false, kv.ErrStubNotImplemented("Get")
}

func (e *Engine) GetMany(_ [][]byte, _ kv.ReadFlags) ([]kv.OptionalValue, error) {
	return nil, kv.ErrStubNotImplemented("GetMany")
}

func (e *Engine) Has(_ []byte) (bool, error) {
	return false, kv.ErrStubNotImplemented("Has")
}

func (e *Engine) GetAll(_ bool) ([]kv.Entry, error) {
	return nil, kv.ErrStubNotImplemented("GetAll")
}

func (e *Engine) GetAllKeys(_ bool) ([][]byte, error) {
	return nil, kv.ErrStubNotImplemented("GetAllKeys")
}

func (e *Engine) GetAllValues(_ bool) ([][]byte, error) {
	return nil, kv.ErrStubNotImplemented("GetAllValues")
}

func (e *Engine) Seek(_ []byte, _ kv.RangeOptions) (kv.Entry, bool, error) {
	return kv.Entry{}, false, kv.ErrStubNotImplemented("Seek")
}

func (e *Engine) Next(_ []byte, _ kv.RangeOptions) (kv.Entry, bool, error) {
	return kv.Entry{}, false, kv.ErrStubNotImplemented("Next")
}

func (e *Engine) Range(_ kv.RangeOptions) ([]kv.Entry, error) {
	return nil, kv.ErrStubNotImplemented("Range")
}

func (e *Engine) Put(_, _ []byte, _ kv.WriteFlags) error {
	return kv.ErrStubNotImplemented("Put")
}

func (e *Engine) Merge(_, _ []byte, _ kv.WriteFlags) error {
	return kv.ErrStubNotImplemented("Merge")
}

func (e *Engine) Remove(_ []byte) error {
	return kv.ErrStubNotImplemented("Remove")
}

func (e *Engine) CreateSnapshot() (kv.Snapshot, error) {
	return nil, kv.ErrStubNotImplemented("CreateSnapshot")
}

func (e *Engine) StartWriteBatch() (kv.WriteBatch, error) {
	return nil, kv.ErrStubNotImplemented("StartWriteBatch")
}

func (e *Engine) WriteBatchOps(_ []kv.WriteOp) error {
	return kv.ErrStubNotImplemented("WriteBatchOps")
}

func (e *Engine) Flush(_ bool) error { return kv.ErrStubNotImplemented("Flush") }

func (e *Engine) Clear() error { return kv.ErrStubNotImplemented("Clear") }

func (e *Engine) Compact() error { return kv.ErrStubNotImplemented("Compact") }

// GatherMetric has no error channel in kv.Engine, so unlike every other
// operation it cannot fail outright; it reports the configured (not actual,
// since nothing is ever stored) sizes instead.
func (e *Engine) GatherMetric() kv.Metric {
	return kv.Metric{
		CacheSize:    uint64(e.cfg.CacheSize.Bytes()),
		MemtableSize: uint64(e.cfg.WriteBufferSize.Bytes()),
	}
}

func (e *Engine) Close() {}
