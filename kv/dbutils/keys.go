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

// Package dbutils supplies the canonical key-layout helpers the named
// databases' own doc comments describe (see kv/tables.go: "block_num_u64 +
// hash -> header", "tx_id_u64 -> rlp(tx)", ...), but that the abstract KV
// contract has no opinion on. The contract only knows about raw bytes; these
// helpers fix a concrete encoding so the blocks/headers/receipts databases
// can be addressed consistently by callers.
package dbutils

import (
	"encoding/binary"

	"github.com/holiman/uint256"
)

// EncodeBlockNumber encodes a block number as an 8-byte big-endian key, so
// that byte order on the key matches numeric order — the convention every
// block_num_u64-prefixed table in kv/tables.go relies on.
func EncodeBlockNumber(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}

// DecodeBlockNumber reverses EncodeBlockNumber.
func DecodeBlockNumber(key []byte) (uint64, bool) {
	if len(key) < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[:8]), true
}

// EncodeUint64 encodes n as an 8-byte big-endian key (txn_id_u64, seq_u64,
// and similar single-counter keys).
func EncodeUint64(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}

// EncodeUint256 encodes a uint256 as a 32-byte big-endian key, used for
// storage-slot keys under the storage database.
func EncodeUint256(n *uint256.Int) []byte {
	var buf [32]byte
	n.WriteToSlice(buf[:])
	return buf[:]
}

// AppendBlockHash builds the "block_num_u64 + hash" composite key shape used
// by the blocks, headers, and blockInfos databases.
func AppendBlockHash(blockNum uint64, hash []byte) []byte {
	key := make([]byte, 0, 8+len(hash))
	key = append(key, EncodeBlockNumber(blockNum)...)
	key = append(key, hash...)
	return key
}
