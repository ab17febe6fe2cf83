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

// Package kvprovider is the factory and provider layer (C8): it builds and
// names concrete kv.Engine instances for the fixed database catalog.
package kvprovider

import (
	"github.com/erigontech/erigon-lib/kv"
	"github.com/erigontech/erigon-lib/kv/memdb"
	"github.com/erigontech/erigon-lib/kv/rocksdbstub"
)

// Kind selects which built-in factory constructs an engine.
type Kind int

const (
	// KindMemory builds a memdb.Engine: fully functional, volatile.
	KindMemory Kind = iota
	// KindPersistentStub builds a rocksdbstub.Engine: every operation fails.
	KindPersistentStub
)

// Factory constructs one kv.Engine from a validated kv.DbConfig.
type Factory interface {
	New(cfg kv.DbConfig) (kv.Engine, error)
}

// MemoryFactory is the built-in in-memory factory.
type MemoryFactory struct{}

func (MemoryFactory) New(cfg kv.DbConfig) (kv.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return memdb.New(cfg.Name), nil
}

// PersistentStubFactory is the built-in persistent-engine stub factory.
type PersistentStubFactory struct{}

func (PersistentStubFactory) New(cfg kv.DbConfig) (kv.Engine, error) {
	return rocksdbstub.New(rocksdbstub.Config{DbConfig: cfg})
}

// factoryFor resolves a Kind to its Factory.
func factoryFor(kind Kind) Factory {
	switch kind {
	case KindPersistentStub:
		return PersistentStubFactory{}
	default:
		return MemoryFactory{}
	}
}

// ColumnsDb is a group of independent engines, one per column of a
// multi-column database name.
type ColumnsDb struct {
	name    kv.Name
	engines map[kv.Column]kv.Engine
}

// GetColumn returns the engine for one column of the group.
func (g *ColumnsDb) GetColumn(column kv.Column) (kv.Engine, bool) {
	e, ok := g.engines[column]
	return e, ok
}

// Name returns the multi-column database name this group belongs to.
func (g *ColumnsDb) Name() kv.Name { return g.name }

// CreateColumnsDb validates name as one of the catalog's multi-column
// databases and constructs one independent engine per column, via kind.
func CreateColumnsDb(name kv.Name, kind Kind) (*ColumnsDb, error) {
	columns := kv.ColumnsOf(name)
	if columns == nil {
		return nil, kv.ErrInvalidColumnDbName(string(name))
	}
	factory := factoryFor(kind)
	engines := make(map[kv.Column]kv.Engine, len(columns))
	for _, col := range columns {
		e, err := factory.New(kv.DbConfig{Name: name})
		if err != nil {
			return nil, err
		}
		engines[col] = e
	}
	return &ColumnsDb{name: name, engines: engines}, nil
}
