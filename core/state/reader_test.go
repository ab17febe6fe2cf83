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

package state

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/erigontech/erigon-lib/kv"
	"github.com/erigontech/erigon-lib/kv/memdb"
	"github.com/erigontech/erigon-lib/trie"
)

func newTestReader() *Reader {
	return NewReader(memdb.New(kv.State), memdb.New(kv.Storage))
}

func TestWriteThenReadAccountRoundTrips(t *testing.T) {
	r := newTestReader()
	addr := []byte{0x01, 0x02, 0x03}
	acc := &Account{
		Nonce:       7,
		Balance:     uint256.NewInt(1000),
		StorageRoot: trie.EmptyRootHash,
		CodeHash:    EmptyCodeHash,
	}
	if err := r.WriteAccount(addr, acc); err != nil {
		t.Fatal(err)
	}
	got, ok, err := r.ReadAccount(addr)
	if err != nil || !ok {
		t.Fatalf("ReadAccount: ok=%v err=%v", ok, err)
	}
	if got.Nonce != 7 || got.Balance.Uint64() != 1000 {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestReadMissingAccountReturnsNotOk(t *testing.T) {
	r := newTestReader()
	_, ok, err := r.ReadAccount([]byte{0xff})
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestStorageIsIsolatedByAddress(t *testing.T) {
	r := newTestReader()
	addrA := []byte{0xAA}
	addrB := []byte{0xBB}
	slot := []byte{0x01}

	if err := r.WriteStorage(addrA, slot, []byte("valueA")); err != nil {
		t.Fatal(err)
	}
	v, ok, err := r.ReadStorage(addrB, slot)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("addrB should not see addrA's storage, got %q", v)
	}
	v, ok, err = r.ReadStorage(addrA, slot)
	if err != nil || !ok || string(v) != "valueA" {
		t.Fatalf("v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestStateRootIsEmptyConstantWithNoAccounts(t *testing.T) {
	r := newTestReader()
	root, err := r.StateRoot()
	if err != nil {
		t.Fatal(err)
	}
	if root != trie.EmptyRootHash {
		t.Fatalf("expected empty root, got %x", root)
	}
}

func TestStateRootChangesWithAccounts(t *testing.T) {
	r := newTestReader()
	before, err := r.StateRoot()
	if err != nil {
		t.Fatal(err)
	}
	acc := &Account{Nonce: 1, Balance: uint256.NewInt(1), StorageRoot: trie.EmptyRootHash, CodeHash: EmptyCodeHash}
	if err := r.WriteAccount([]byte{0x01}, acc); err != nil {
		t.Fatal(err)
	}
	after, err := r.StateRoot()
	if err != nil {
		t.Fatal(err)
	}
	if before == after {
		t.Fatalf("state root should change once an account is written")
	}
}

func TestStorageRootOfUntouchedAccountIsEmptyConstant(t *testing.T) {
	r := newTestReader()
	root, err := r.StorageRoot([]byte{0x01})
	if err != nil {
		t.Fatal(err)
	}
	if root != trie.EmptyRootHash {
		t.Fatalf("expected empty root, got %x", root)
	}
}
