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

// Command triehash computes a Modified Merkle Patricia Trie root hash from a
// flat key/value JSON file, exercising the trie package end to end.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/erigontech/erigon-lib/common/math"
	"github.com/erigontech/erigon-lib/trie"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "triehash",
	Short: "Compute a Modified Merkle Patricia Trie root hash",
}

var rootHashCmd = &cobra.Command{
	Use:   "root",
	Short: "Compute the trie root of a hex-encoded key/value JSON file",
	Long: `Reads a JSON file of the form [{"key": "<hex>", "value": "<hex>"}, ...]
and prints the Modified Merkle Patricia Trie root hash.

Examples:
  # Compute the root of a key/value fixture
  triehash root -f entries.json`,
	RunE: runRootHash,
}

func init() {
	rootHashCmd.Flags().StringP("file", "f", "", "JSON file of hex key/value entries (required)")
	rootHashCmd.Flags().Bool("log-json", false, "Output logs in JSON format instead of console form")
	rootHashCmd.Flags().String("limit", "", "Only hash the first N entries, hex (0x...) or decimal (default: all)")
	_ = rootHashCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(rootHashCmd)
}

// entry is the wire shape of one row in the input file.
type entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func runRootHash(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	limitStr, _ := cmd.Flags().GetString("limit")
	initLogging(logJSON)

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	log.Debug().Int("entries", len(entries)).Str("file", filename).Msg("loaded fixture")

	if limitStr != "" {
		limit, ok := math.ParseUint64(limitStr)
		if !ok {
			return fmt.Errorf("failed to parse limit: %q is not hex or decimal", limitStr)
		}
		if limit < uint64(len(entries)) {
			entries = entries[:limit]
			log.Debug().Uint64("limit", limit).Msg("truncated fixture")
		}
	}

	keys := make([][]byte, len(entries))
	values := make([][]byte, len(entries))
	for i, e := range entries {
		k, err := hex.DecodeString(trimHexPrefix(e.Key))
		if err != nil {
			return fmt.Errorf("entry %d: invalid key hex: %w", i, err)
		}
		v, err := hex.DecodeString(trimHexPrefix(e.Value))
		if err != nil {
			return fmt.Errorf("entry %d: invalid value hex: %w", i, err)
		}
		keys[i] = k
		values[i] = v
	}

	root, err := trie.Root(keys, values)
	if err != nil {
		return fmt.Errorf("failed to compute root: %w", err)
	}

	fmt.Printf("0x%x\n", root)
	return nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func initLogging(jsonOutput bool) {
	if jsonOutput {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
