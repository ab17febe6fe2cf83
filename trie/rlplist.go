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

package trie

import "github.com/ethereum/go-ethereum/rlp"

// nodeRef is what a trie node looks like once it has been resolved for
// embedding in its parent: either the verbatim RLP of an inlined child
// (rlp.RawValue, spliced into the parent's list without re-encoding) or the
// 32-byte Keccak hash of a child that was too big to inline (an ordinary
// byte string). Mixing these two kinds of list items is the entire trick of
// MPT node encoding: a generic "list of strings" encoder would wrap the
// inlined child's bytes as a string and silently produce a different root.
type nodeRef interface{}

// encodeList RLP-encodes items as a list, honoring rlp.RawValue items
// verbatim (already-encoded, spliced in as-is) and encoding any other item
// (typically []byte) as an ordinary RLP string/list via reflection. The only
// way this fails is an allocation failure inside the RLP encoder; §4.1 asks
// that such failures be surfaced rather than swallowed, so the error is
// returned rather than panicked.
func encodeList(items ...interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(items)
}

// emptyStringRLP is the RLP encoding of the empty byte string, used both as
// the canonical "empty node" and as the branch value slot when no key
// terminates at a branch.
var emptyStringRLP = []byte{0x80}
