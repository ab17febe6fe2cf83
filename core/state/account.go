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

// Package state composes the kv engines (C4/C5/C7) with the trie root
// hasher (C3) into the one thing they are built for: reading and hashing
// Ethereum-shaped account and storage state. It is this repository's
// concrete answer to "why does a storage core need a Merkle trie" — nothing
// here is part of the abstract KVS/MPT contracts themselves.
package state

import (
	"github.com/holiman/uint256"
)

// Account is the RLP leaf value stored under the state database, matching
// the four-field shape of an Ethereum account: nonce, balance, storage
// root, and code hash.
type Account struct {
	Nonce       uint64
	Balance     *uint256.Int
	StorageRoot [32]byte
	CodeHash    [32]byte
}

// EmptyCodeHash is keccak256 of the empty byte string, the CodeHash of an
// account with no contract code.
var EmptyCodeHash = [32]byte{
	0xc5, 0xd2, 0x46, 0x01, 0x86, 0xf7, 0x23, 0x3c,
	0x92, 0x7e, 0x7d, 0xb2, 0xdc, 0xc7, 0x03, 0xc0,
	0xe5, 0x00, 0xb6, 0x53, 0xca, 0x82, 0x27, 0x3b,
	0x7b, 0xfa, 0xd8, 0x04, 0x5d, 0x85, 0xa4, 0x70,
}

// NewEmptyAccount returns the zero-value account an address has before it is
// first touched: no nonce, no balance, no code, and EmptyRootHash as its
// storage root.
func NewEmptyAccount(emptyRootHash [32]byte) *Account {
	return &Account{
		Balance:     new(uint256.Int),
		StorageRoot: emptyRootHash,
		CodeHash:    EmptyCodeHash,
	}
}

// IsEmpty reports whether a matches the EIP-161 "empty account" definition:
// zero nonce, zero balance, no code.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && a.CodeHash == EmptyCodeHash
}
