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

package kv

// ReadFlags is an optional bitset hint passed to read operations. Flags are
// advisory: the in-memory engine accepts them but ignores them, since it has
// no cache/read-ahead machinery of its own to tune.
type ReadFlags uint32

const (
	ReadNone              ReadFlags = 0
	ReadHintCacheMiss     ReadFlags = 1
	ReadHintReadAhead     ReadFlags = 2
	ReadHintReadAhead2    ReadFlags = 4
	ReadHintReadAhead3    ReadFlags = 8
	ReadSkipDuplicateRead ReadFlags = 16

	readFlagsMask ReadFlags = 31
)

// Valid reports whether every set bit in f is a known flag.
func (f ReadFlags) Valid() bool { return f&^readFlagsMask == 0 }

// WriteFlags is an optional bitset hint passed to write operations.
type WriteFlags uint32

const (
	WriteNone        WriteFlags = 0
	WriteLowPriority WriteFlags = 1
	WriteDisableWAL  WriteFlags = 2

	writeFlagsMask WriteFlags = 3
)

// Valid reports whether every set bit in f is a known flag.
func (f WriteFlags) Valid() bool { return f&^writeFlagsMask == 0 }
