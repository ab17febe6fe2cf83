// Copyright 2015 The go-ethereum Authors
// (original work)
// Copyright 2024 The Erigon Authors
// (modifications)
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

// keybytesToNibbles expands a byte key into a nibble list, high nibble of
// each byte first. A 0x45 byte becomes the nibbles 4, 5.
func keybytesToNibbles(key []byte) []byte {
	nibbles := make([]byte, len(key)*2)
	for i, b := range key {
		nibbles[i*2] = b >> 4
		nibbles[i*2+1] = b & 0x0f
	}
	return nibbles
}

// hexPrefixEncode applies the compact (hex-prefix) encoding described in the
// Ethereum yellow paper appendix C to a nibble path. leaf selects the leaf
// flag (0x2_) versus the extension flag (0x0_); the odd/even length of nib
// selects whether the low nibble of the first byte carries nib's first
// digit.
func hexPrefixEncode(nib []byte, leaf bool) []byte {
	odd := len(nib)%2 == 1
	var first byte
	if leaf {
		first = 0x20
	}
	start := 0
	if odd {
		first |= 0x10 | nib[0]
		start = 1
	}
	rest := nib[start:]
	out := make([]byte, 1+len(rest)/2)
	out[0] = first
	for i := 0; i < len(rest); i += 2 {
		out[1+i/2] = rest[i]<<4 | rest[i+1]
	}
	return out
}

// commonPrefixLen returns the length of the longest common prefix shared by
// every nibble slice in paths, each itself restricted to paths[i][level:].
// It returns 0 if paths is empty or any path has no nibbles left at level.
func commonPrefixLen(paths [][]byte, level int) int {
	if len(paths) == 0 {
		return 0
	}
	first := paths[0][level:]
	maxLen := len(first)
	for _, p := range paths[1:] {
		rem := len(p) - level
		if rem < maxLen {
			maxLen = rem
		}
	}
	for i := 0; i < maxLen; i++ {
		c := first[i]
		for _, p := range paths[1:] {
			if p[level+i] != c {
				return i
			}
		}
	}
	return maxLen
}
