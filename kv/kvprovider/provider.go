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

package kvprovider

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/erigontech/erigon-lib/kv"
)

// Provider builds and owns every single-column engine in the catalog plus
// both multi-column groups, within one acquisition scope. Distinct named
// databases are strictly isolated from one another.
type Provider struct {
	mu      sync.RWMutex
	dbs     map[kv.Name]kv.Engine
	columns map[kv.Name]*ColumnsDb
}

// New builds a Provider: every single-column name in kv.Names gets its own
// engine of kind, and the two multi-column names (receipts,
// blobTransactions) get their column groups. Construction is fanned out
// across an errgroup, bounded by the number of names, since each engine is
// independent and carries no shared state to race on.
func New(kind Kind) (*Provider, error) {
	p := &Provider{
		dbs:     make(map[kv.Name]kv.Engine),
		columns: make(map[kv.Name]*ColumnsDb),
	}

	var g errgroup.Group
	factory := factoryFor(kind)

	for _, name := range kv.Names {
		name := name
		if kv.IsMultiColumn(name) {
			g.Go(func() error {
				group, err := CreateColumnsDb(name, kind)
				if err != nil {
					return err
				}
				p.mu.Lock()
				p.columns[name] = group
				p.mu.Unlock()
				return nil
			})
			continue
		}
		g.Go(func() error {
			e, err := factory.New(kv.DbConfig{Name: name})
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.dbs[name] = e
			p.mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// GetDb returns the single-column engine for name, or false if name is not a
// single-column database in the catalog.
func (p *Provider) GetDb(name kv.Name) (kv.Engine, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.dbs[name]
	return e, ok
}

// GetColumnDb returns the column group for a multi-column name, or false.
func (p *Provider) GetColumnDb(name kv.Name) (*ColumnsDb, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.columns[name]
	return g, ok
}

// Close releases every engine this provider owns.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.dbs {
		e.Close()
	}
	for _, g := range p.columns {
		for _, e := range g.engines {
			e.Close()
		}
	}
}

// The following are the catalog's named convenience accessors. Each is a
// thin, panic-free wrapper over GetDb/GetColumnDb for the one name it names.

func (p *Provider) StorageDb() (kv.Engine, bool)      { return p.GetDb(kv.Storage) }
func (p *Provider) StateDb() (kv.Engine, bool)        { return p.GetDb(kv.State) }
func (p *Provider) CodeDb() (kv.Engine, bool)         { return p.GetDb(kv.Code) }
func (p *Provider) BlocksDb() (kv.Engine, bool)       { return p.GetDb(kv.Blocks) }
func (p *Provider) HeadersDb() (kv.Engine, bool)      { return p.GetDb(kv.Headers) }
func (p *Provider) BlockNumbersDb() (kv.Engine, bool) { return p.GetDb(kv.BlockNumbers) }
func (p *Provider) BlockInfosDb() (kv.Engine, bool)   { return p.GetDb(kv.BlockInfos) }
func (p *Provider) BadBlocksDb() (kv.Engine, bool)    { return p.GetDb(kv.BadBlocks) }
func (p *Provider) BloomDb() (kv.Engine, bool)        { return p.GetDb(kv.Bloom) }
func (p *Provider) MetadataDb() (kv.Engine, bool)     { return p.GetDb(kv.Metadata) }
func (p *Provider) DiscoveryNodesDb() (kv.Engine, bool)   { return p.GetDb(kv.DiscoveryNodes) }
func (p *Provider) DiscoveryV5NodesDb() (kv.Engine, bool) { return p.GetDb(kv.DiscoveryV5Nodes) }
func (p *Provider) PeersDb() (kv.Engine, bool)        { return p.GetDb(kv.Peers) }

func (p *Provider) ReceiptsDb() (*ColumnsDb, bool)         { return p.GetColumnDb(kv.Receipts) }
func (p *Provider) BlobTransactionsDb() (*ColumnsDb, bool) { return p.GetColumnDb(kv.BlobTransactions) }
