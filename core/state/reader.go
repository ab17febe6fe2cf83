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
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/erigontech/erigon-lib/kv"
	"github.com/erigontech/erigon-lib/trie"
)

// Reader reads and hashes account/storage state backed by two named
// databases: one holding RLP-encoded accounts keyed by address, the other
// holding raw storage values keyed by address||slot.
type Reader struct {
	stateDb   kv.Engine
	storageDb kv.Engine
}

// NewReader builds a Reader over the given state and storage engines. Both
// are expected to come from a kvprovider.Provider (StateDb()/StorageDb()),
// but any conforming kv.Engine works, including an overlaydb wrapper.
func NewReader(stateDb, storageDb kv.Engine) *Reader {
	return &Reader{stateDb: stateDb, storageDb: storageDb}
}

// ReadAccount returns the decoded account stored at address, or ok=false if
// the address has never been touched.
func (r *Reader) ReadAccount(address []byte) (*Account, bool, error) {
	enc, ok, err := r.stateDb.Get(address, kv.ReadNone)
	if err != nil {
		return nil, false, fmt.Errorf("state: read account %x: %w", address, err)
	}
	if !ok {
		return nil, false, nil
	}
	var acc Account
	if err := rlp.DecodeBytes(enc, &acc); err != nil {
		return nil, false, fmt.Errorf("state: decode account %x: %w", address, err)
	}
	return &acc, true, nil
}

// WriteAccount RLP-encodes acc and stores it under address.
func (r *Reader) WriteAccount(address []byte, acc *Account) error {
	enc, err := rlp.EncodeToBytes(acc)
	if err != nil {
		return fmt.Errorf("state: encode account %x: %w", address, err)
	}
	return r.stateDb.Put(address, enc, kv.WriteNone)
}

// storageKey is the composite key under which one storage slot of address is
// stored: address||slot, so a prefix range over address enumerates exactly
// that account's storage.
func storageKey(address, slot []byte) []byte {
	key := make([]byte, 0, len(address)+len(slot))
	key = append(key, address...)
	key = append(key, slot...)
	return key
}

// ReadStorage returns the raw value stored at (address, slot), or ok=false
// if absent.
func (r *Reader) ReadStorage(address, slot []byte) ([]byte, bool, error) {
	v, ok, err := r.storageDb.Get(storageKey(address, slot), kv.ReadNone)
	if err != nil {
		return nil, false, fmt.Errorf("state: read storage %x/%x: %w", address, slot, err)
	}
	return v, ok, nil
}

// WriteStorage stores value at (address, slot). Per §6's "an empty value is
// a valid stored value", value may be empty but not nil-vs-absent.
func (r *Reader) WriteStorage(address, slot, value []byte) error {
	return r.storageDb.Put(storageKey(address, slot), value, kv.WriteNone)
}

// StateRoot computes the MPT root over every account currently in the state
// database: each account's already-RLP-encoded form is the trie leaf value.
func (r *Reader) StateRoot() ([32]byte, error) {
	entries, err := r.stateDb.GetAll(false)
	if err != nil {
		return [32]byte{}, fmt.Errorf("state: enumerate accounts: %w", err)
	}
	keys := make([][]byte, len(entries))
	values := make([][]byte, len(entries))
	for i, ent := range entries {
		keys[i] = ent.Key
		values[i] = ent.Value
	}
	root, err := trie.Root(keys, values)
	if err != nil {
		return [32]byte{}, fmt.Errorf("state: compute state root: %w", err)
	}
	return root, nil
}

// StorageRoot computes the MPT root over one account's storage slots: every
// stored (address, slot) pair under the given address, keyed by slot alone.
func (r *Reader) StorageRoot(address []byte) ([32]byte, error) {
	entries, err := r.storageDb.Range(kv.RangeOptions{Prefix: address})
	if err != nil {
		return [32]byte{}, fmt.Errorf("state: enumerate storage for %x: %w", address, err)
	}
	keys := make([][]byte, len(entries))
	values := make([][]byte, len(entries))
	for i, ent := range entries {
		keys[i] = ent.Key[len(address):]
		values[i] = ent.Value
	}
	root, err := trie.Root(keys, values)
	if err != nil {
		return [32]byte{}, fmt.Errorf("state: compute storage root for %x: %w", address, err)
	}
	return root, nil
}
