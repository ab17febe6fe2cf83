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

import "encoding/hex"

const hexDigits = "0123456789abcdef"

// KeyToHex renders a raw key as the engine-internal index form: lowercase
// hex, "0x" prefixed. This is an implementation detail of the reference
// engines (they index entries by this string instead of the raw bytes), not
// part of the on-boundary wire shape — callers never see it.
func KeyToHex(key []byte) string {
	buf := make([]byte, 2+len(key)*2)
	buf[0], buf[1] = '0', 'x'
	j := 2
	for _, b := range key {
		buf[j] = hexDigits[b>>4]
		buf[j+1] = hexDigits[b&0x0f]
		j += 2
	}
	return string(buf)
}

// HexToKey reverses KeyToHex. It returns false if s is not a well-formed
// "0x"-prefixed even-length hex string.
func HexToKey(s string) ([]byte, bool) {
	if len(s) < 2 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return nil, false
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, false
	}
	return b, true
}
