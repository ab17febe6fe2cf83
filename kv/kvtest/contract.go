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

// Package kvtest is a shared kv.Engine contract suite, run against every
// conforming engine (memdb, overlaydb with a memdb base) so the iterator and
// clone-discipline rules in §4.5 are checked once per backend rather than
// reimplemented per package.
package kvtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/erigon-lib/kv"
)

// RunCloneDiscipline asserts that newEngine() hands back independent copies
// on both the ingress and egress side of Put/Get.
func RunCloneDiscipline(t *testing.T, newEngine func() kv.Engine) {
	t.Run("PutClonesInput", func(t *testing.T) {
		e := newEngine()
		defer e.Close()
		k := []byte("k1")
		v := []byte("v1")
		require.NoError(t, e.Put(k, v, kv.WriteNone))
		v[0] = 'X'
		got, ok, err := e.Get([]byte("k1"), kv.ReadNone)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "v1", string(got))
	})

	t.Run("GetClonesOutput", func(t *testing.T) {
		e := newEngine()
		defer e.Close()
		require.NoError(t, e.Put([]byte("k1"), []byte("v1"), kv.WriteNone))
		got, ok, err := e.Get([]byte("k1"), kv.ReadNone)
		require.NoError(t, err)
		require.True(t, ok)
		got[0] = 'X'
		got2, _, _ := e.Get([]byte("k1"), kv.ReadNone)
		require.Equal(t, "v1", string(got2))
	})
}

// RunIteratorContract asserts the §4.5 range/seek/next semantics hold.
func RunIteratorContract(t *testing.T, newEngine func() kv.Engine) {
	seed := func(t *testing.T) kv.Engine {
		e := newEngine()
		for _, k := range []string{"a", "ab", "abc", "b", "ba"} {
			require.NoError(t, e.Put([]byte(k), []byte(k), kv.WriteNone))
		}
		return e
	}

	t.Run("RangeEmptyPrefixIsEverything", func(t *testing.T) {
		e := seed(t)
		defer e.Close()
		entries, err := e.Range(kv.RangeOptions{})
		require.NoError(t, err)
		require.Len(t, entries, 5)
	})

	t.Run("RangeRestrictsToPrefix", func(t *testing.T) {
		e := seed(t)
		defer e.Close()
		entries, err := e.Range(kv.RangeOptions{Prefix: []byte("a")})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for _, ent := range entries {
			require.True(t, len(ent.Key) > 0 && ent.Key[0] == 'a')
		}
	})

	t.Run("SeekFindsFirstGreaterOrEqual", func(t *testing.T) {
		e := seed(t)
		defer e.Close()
		// Ascending order under the §3 tie-break (longer-sorts-first on a
		// prefix relationship) is abc, ab, a, ba, b: "a" is a strict prefix
		// of "ac", so "ac" sorts before "a", making "a" the first stored key
		// >= "ac".
		ent, ok, err := e.Seek([]byte("ac"), kv.RangeOptions{})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "a", string(ent.Key))
	})

	t.Run("NextIsStrictlyGreater", func(t *testing.T) {
		e := seed(t)
		defer e.Close()
		ent, ok, err := e.Next([]byte("ab"), kv.RangeOptions{})
		require.NoError(t, err)
		require.True(t, ok)
		require.NotEqual(t, "ab", string(ent.Key))
	})

	t.Run("NextPastLastReturnsNone", func(t *testing.T) {
		e := seed(t)
		defer e.Close()
		// Ascending order is abc, ab, a, ba, b: "b" (not "ba") is the actual
		// maximum under the §3 tie-break, since "ba" sorts before its own
		// prefix "b".
		_, ok, err := e.Next([]byte("b"), kv.RangeOptions{})
		require.NoError(t, err)
		require.False(t, ok)
	})
}

// RunRemoveIsIdempotent asserts removing an absent key is not an error.
func RunRemoveIsIdempotent(t *testing.T, newEngine func() kv.Engine) {
	e := newEngine()
	defer e.Close()
	require.NoError(t, e.Remove([]byte("never-there")))
}
