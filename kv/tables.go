// Copyright 2021 The Erigon Authors
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

import "sort"

// Name identifies one of the fixed catalog of logical databases this
// storage core knows about. This is a closed enumeration: an unknown Name is
// rejected at DbConfig construction, not silently accepted as a new table.
type Name string

const (
	Storage          Name = "storage"
	State            Name = "state"
	Code             Name = "code"
	Blocks           Name = "blocks"
	Headers          Name = "headers"
	BlockNumbers     Name = "blockNumbers"
	Receipts         Name = "receipts" // multi-column: see ColumnsOf
	BlockInfos       Name = "blockInfos"
	BadBlocks        Name = "badBlocks"
	Bloom            Name = "bloom"
	Metadata         Name = "metadata"
	BlobTransactions Name = "blobTransactions" // multi-column: see ColumnsOf
	DiscoveryNodes   Name = "discoveryNodes"
	DiscoveryV5Nodes Name = "discoveryV5Nodes"
	Peers            Name = "peers"
)

// Names lists every database name in the catalog (single- and multi-column
// alike), sorted for stable iteration order. The provider (C8) iterates it to
// start one construction per name; the constructions run concurrently, so
// they do not complete in this order.
var Names = sortedNames([]Name{
	Storage, State, Code, Blocks, Headers, BlockNumbers, Receipts, BlockInfos,
	BadBlocks, Bloom, Metadata, BlobTransactions, DiscoveryNodes, DiscoveryV5Nodes, Peers,
})

func sortedNames(in []Name) []Name {
	out := append([]Name(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsKnownName reports whether name is in the catalog.
func IsKnownName(name Name) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Column identifies one column of a multi-column database: a named group
// whose columns are independent single-column engines that share the
// parent Name but keep strictly isolated contents.
type Column string

const (
	ReceiptsDefault      Column = "default"
	ReceiptsTransactions Column = "transactions"
	ReceiptsBlocks       Column = "blocks"

	BlobTxFullBlobTxs  Column = "fullBlobTxs"
	BlobTxLightBlobTxs Column = "lightBlobTxs"
	BlobTxProcessedTxs Column = "processedTxs"
)

// ColumnsOf returns the ordered column list for a multi-column database
// name, or nil if name has no columns (every catalog entry besides Receipts
// and BlobTransactions).
func ColumnsOf(name Name) []Column {
	switch name {
	case Receipts:
		return []Column{ReceiptsDefault, ReceiptsTransactions, ReceiptsBlocks}
	case BlobTransactions:
		return []Column{BlobTxFullBlobTxs, BlobTxLightBlobTxs, BlobTxProcessedTxs}
	default:
		return nil
	}
}

// IsMultiColumn reports whether name is one of the two multi-column
// databases in the catalog.
func IsMultiColumn(name Name) bool { return ColumnsOf(name) != nil }
