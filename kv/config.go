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

import (
	"os"
	"path/filepath"
	"strings"
)

// DbConfig configures one engine acquisition: which named database, and
// (for on-disk engines) where it lives.
type DbConfig struct {
	Name     Name
	Path     string
	BasePath string
}

// Validate rejects an unknown Name. Construction-time validation only; it
// does not touch the filesystem.
func (c DbConfig) Validate() error {
	if !IsKnownName(c.Name) {
		return WrapDbError("Invalid DbConfig", ErrInvalidColumnDbName(string(c.Name)))
	}
	return nil
}

// GetFullPath resolves the on-disk path for c, per §4.7:
//  1. dbPath := c.Path, or c.Name if Path is empty.
//  2. If BasePath is empty, return dbPath unchanged.
//  3. If dbPath is absolute or explicitly relative (./, ../, .\, ..\),
//     return it unchanged — it already says where it wants to live.
//  4. If BasePath is absolute or explicitly relative, join(BasePath, dbPath).
//  5. Otherwise join(cwd, BasePath, dbPath).
func (c DbConfig) GetFullPath() (string, error) {
	dbPath := c.Path
	if dbPath == "" {
		dbPath = string(c.Name)
	}
	if c.BasePath == "" {
		return dbPath, nil
	}
	if isExplicitPath(dbPath) {
		return dbPath, nil
	}
	if isExplicitPath(c.BasePath) {
		return filepath.Join(c.BasePath, dbPath), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", WrapDbError("Invalid DbConfig", err)
	}
	return filepath.Join(cwd, c.BasePath, dbPath), nil
}

// isExplicitPath reports whether p is absolute or starts with an explicit
// relative marker (./, ../, .\, ..\). A bare name like "state" is neither.
func isExplicitPath(p string) bool {
	if filepath.IsAbs(p) {
		return true
	}
	for _, prefix := range []string{"./", "../", `.\`, `..\`} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
