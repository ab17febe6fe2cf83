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

// Package trie computes Modified Merkle Patricia Trie root hashes from an
// unordered set of key/value byte pairs, matching the Ethereum execution
// specification's patricialize algorithm exactly: hex-prefix path encoding,
// the "inline node below 32 bytes" rule, and the Keccak-256/RLP composition
// used for state, transaction and receipt roots.
//
// This package does not build or retain a trie data structure between calls:
// every root is computed fresh from a full key/value snapshot. There is no
// incremental update and no persistence of intermediate nodes.
package trie

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/sha3"
)

// EmptyRootHash is keccak256(rlp(emptyString)), the root of a trie with no
// entries.
var EmptyRootHash = [32]byte{
	0x56, 0xe8, 0x1f, 0x17, 0x1b, 0xcc, 0x55, 0xa6,
	0xff, 0x83, 0x45, 0xe6, 0x92, 0xc0, 0xf8, 0x6e,
	0x5b, 0x48, 0xe0, 0x1b, 0x99, 0x6c, 0xad, 0xc0,
	0x01, 0x62, 0x2f, 0xb5, 0xe3, 0x63, 0xb4, 0x21,
}

// keccak256 hashes data with Keccak-256 (not NIST SHA3-256). The digest
// algorithm itself is treated as an external collaborator; this is the only
// place that invokes it.
func keccak256(data []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// Root computes the Modified Merkle Patricia Trie root hash of the given
// key/value pairs. keys and values must have equal length; both are taken as
// already in final form (secure tries prehash keys before calling, and
// values are already RLP-encoded where the protocol requires it).
//
// If the same key appears more than once, the later occurrence wins, mirroring
// a Python-dict-like overwrite.
func Root(keys, values [][]byte) ([32]byte, error) {
	if len(keys) != len(values) {
		return [32]byte{}, fmt.Errorf("trie: mismatched key/value slice lengths: %d keys, %d values", len(keys), len(values))
	}
	if len(keys) == 0 {
		return EmptyRootHash, nil
	}

	// Collapse duplicate keys first, keeping the value of the later occurrence.
	index := make(map[string]int, len(keys))
	nibbleKeys := make([][]byte, 0, len(keys))
	uniqueValues := make([][]byte, 0, len(values))
	for i, k := range keys {
		if j, seen := index[string(k)]; seen {
			uniqueValues[j] = values[i]
			continue
		}
		index[string(k)] = len(nibbleKeys)
		nibbleKeys = append(nibbleKeys, keybytesToNibbles(k))
		uniqueValues = append(uniqueValues, values[i])
	}

	ref, err := patricialize(nibbleKeys, uniqueValues, 0)
	if err != nil {
		return [32]byte{}, err
	}
	return rootHashFromRef(ref)
}

// rootHashFromRef applies the root-encoding rule: a root whose RLP is already
// a hash (>=32 bytes, patricialize hashed it) is returned as-is; a root whose
// RLP was small enough to stay inlined is hashed here, once, at the top.
func rootHashFromRef(ref nodeRef) ([32]byte, error) {
	switch v := ref.(type) {
	case [32]byte:
		return v, nil
	case rawRLP:
		return keccak256(v), nil
	default:
		return [32]byte{}, fmt.Errorf("trie: unexpected root reference type %T", ref)
	}
}

// rawRLP marks a byte slice as already-encoded RLP to be embedded verbatim
// (an inlined child), as opposed to a plain byte string that still needs RLP
// string-encoding.
type rawRLP []byte

// patricialize implements the algorithm of §4.1: branch/extension/leaf
// construction over nibble-expanded keys, encoding each emitted node and
// resolving it to either its verbatim RLP (if under 32 bytes) or its
// Keccak-256 hash.
func patricialize(keys [][]byte, values [][]byte, level int) (nodeRef, error) {
	if len(keys) == 0 {
		return resolve(emptyStringRLP)
	}
	if len(keys) == 1 {
		return leafNode(keys[0][level:], values[0])
	}

	if p := commonPrefixLen(keys, level); p > 0 {
		return extensionNode(keys, values, level, p)
	}

	return branchNode(keys, values, level)
}

// leafNode emits a leaf: the compact-encoded remaining nibble path (with the
// leaf flag set) paired with the terminating value.
func leafNode(path []byte, value []byte) (nodeRef, error) {
	enc, err := encodeList(hexPrefixEncode(path, true), value)
	if err != nil {
		return nil, err
	}
	return resolve(enc)
}

// extensionNode emits an extension over the shared prefix [level, level+p),
// recursing into the remainder of the key set at level+p.
func extensionNode(keys, values [][]byte, level, p int) (nodeRef, error) {
	child, err := patricialize(keys, values, level+p)
	if err != nil {
		return nil, err
	}
	enc, err := encodeList(hexPrefixEncode(keys[0][level:level+p], false), childItem(child))
	if err != nil {
		return nil, err
	}
	return resolve(enc)
}

// branchNode partitions the key set into 16 nibble buckets at level, recurses
// into each, and collects any value whose key ends exactly at level (the
// branch's own value slot; later entries win on duplicate termination).
func branchNode(keys, values [][]byte, level int) (nodeRef, error) {
	var buckets [16][][]byte
	var bucketVals [16][][]byte
	var branchValue []byte
	haveBranchValue := false

	for i, k := range keys {
		if len(k) == level {
			branchValue = values[i]
			haveBranchValue = true
			continue
		}
		n := k[level]
		buckets[n] = append(buckets[n], k)
		bucketVals[n] = append(bucketVals[n], values[i])
	}

	items := make([]interface{}, 17)
	for n := 0; n < 16; n++ {
		if len(buckets[n]) == 0 {
			items[n] = emptyStringPlaceholder()
			continue
		}
		child, err := patricialize(buckets[n], bucketVals[n], level+1)
		if err != nil {
			return nil, err
		}
		items[n] = childItem(child)
	}
	if haveBranchValue {
		items[16] = branchValue
	} else {
		items[16] = emptyStringPlaceholder()
	}

	enc, err := encodeList(items...)
	if err != nil {
		return nil, err
	}
	return resolve(enc)
}

// emptyStringPlaceholder is the RLP empty-string item used for absent branch
// children and the absent branch value: an actual empty []byte, which the
// RLP string encoder renders as 0x80. It is not a nullable/absent slot; the
// spec is explicit that the sentinel is the empty byte string, not nil.
func emptyStringPlaceholder() []byte { return []byte{} }

// childItem turns a resolved child reference into the list item its parent
// embeds: a verbatim sub-list for inlined children, a 32-byte string for
// hashed ones.
func childItem(ref nodeRef) interface{} {
	switch v := ref.(type) {
	case rawRLP:
		return rlp.RawValue(v)
	case [32]byte:
		return v[:]
	default:
		panic(fmt.Sprintf("trie: unexpected child reference type %T", ref))
	}
}

// resolve applies the <32-bytes inlining rule to a freshly encoded node: if
// its RLP is strictly shorter than 32 bytes it is kept verbatim (to be
// embedded directly in the parent); otherwise it is replaced by its
// Keccak-256 hash.
func resolve(enc []byte) (nodeRef, error) {
	if len(enc) < 32 {
		return rawRLP(enc), nil
	}
	return keccak256(enc), nil
}
