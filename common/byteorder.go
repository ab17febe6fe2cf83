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

package common

// CompareBytes orders two byte sequences the way the storage core requires:
// position-wise lexicographic compare, with one caveat. If one sequence is a
// strict prefix of the other, the LONGER one sorts first. This is the
// opposite of Go's bytes.Compare and of plain lexicographic string order; it
// is reused by every iterator, ordered enumeration, and prefix-seek in the
// key/value layer, so it lives here once instead of being reimplemented per
// engine.
func CompareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) == len(b):
		return 0
	case len(a) > len(b):
		return -1
	default:
		return 1
	}
}

// Less reports whether a sorts strictly before b under CompareBytes.
func Less(a, b []byte) bool { return CompareBytes(a, b) < 0 }

// HasPrefix reports whether key starts with prefix. An empty prefix matches
// every key.
func HasPrefix(key, prefix []byte) bool {
	if len(prefix) > len(key) {
		return false
	}
	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}
	return true
}

// CloneBytes returns an independent copy of b, or nil if b is nil. An empty,
// non-nil slice clones to an empty, non-nil slice: the storage core treats a
// stored empty value as distinct from an absent entry, so the clone must
// preserve nil-ness.
func CloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

