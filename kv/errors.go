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

import "fmt"

// DbError is the single tagged error kind every KV operation fails with. It
// carries a human-readable message and an optional underlying cause; there
// is no richer error taxonomy in this layer (see spec §7 — validation,
// unsupported-operation, and resource-error categories are all surfaced
// through this one type).
type DbError struct {
	Message string
	Cause   error
}

func (e *DbError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DbError) Unwrap() error { return e.Cause }

// NewDbError builds a DbError with no underlying cause.
func NewDbError(message string) *DbError {
	return &DbError{Message: message}
}

// WrapDbError builds a DbError with message and an underlying cause.
func WrapDbError(message string, cause error) *DbError {
	return &DbError{Message: message, Cause: cause}
}

// Well-known messages, verbatim per spec §6.
var (
	ErrInvalidConfig    = NewDbError("Invalid DbConfig")
	ErrInvalidKey       = NewDbError("Invalid DB key")
	ErrInvalidValue     = NewDbError("Invalid DB value")
	ErrMergeUnsupported = NewDbError("Merge is not supported by the memory DB")
	ErrNullDbWrites     = NewDbError("NullDb does not support writes")
	ErrReadOnlyDbWrites = NewDbError("ReadOnlyDb does not support writes")
	ErrReadOnlyDbMerge  = NewDbError("ReadOnlyDb does not support merge")
	ErrFailedClearBatch = NewDbError("Failed to clear write batch")
)

// ErrInvalidColumnDbName builds the "Invalid column DB name: <value>" error
// for a column-database name outside the {receipts, blobTransactions} group.
func ErrInvalidColumnDbName(name string) *DbError {
	return NewDbError(fmt.Sprintf("Invalid column DB name: %s", name))
}

// ErrStubNotImplemented builds the persistent-engine stub's per-operation
// error: "RocksDb backend stub does not implement <operation>".
func ErrStubNotImplemented(operation string) *DbError {
	return NewDbError(fmt.Sprintf("RocksDb backend stub does not implement %s", operation))
}
