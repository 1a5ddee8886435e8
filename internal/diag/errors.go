// Copyright 2026 The ntfs-parse Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag defines the error taxonomy shared by every decoder in the
// parsing pipeline, plus a Collector for recoverable per-record failures and
// an atomic file-write helper used by the presenter.
package diag

import (
	"errors"
	"fmt"
)

// Sentinel errors. Decoders wrap these with fmt.Errorf("...: %w", ...) so
// callers can still errors.Is against the taxonomy after wrapping.
var (
	// ErrNotNtfs is fatal: the boot sector's OEM ID is not "NTFS    ".
	ErrNotNtfs = errors.New("not an NTFS volume")

	// ErrReadOutOfRange is fatal when it prevents bootstrapping the MFT;
	// recoverable when it only affects a single record.
	ErrReadOutOfRange = errors.New("read out of range")

	// ErrFixupMismatch means the last two bytes of a sector did not match
	// the update-sequence-array signature.
	ErrFixupMismatch = errors.New("fixup signature mismatch")

	// ErrBadSignature means a structure's magic did not match what was
	// expected at that offset.
	ErrBadSignature = errors.New("bad signature")

	// ErrRunlistOverflow means a non-resident attribute's runlist could
	// not be decoded without running past its declared extent.
	ErrRunlistOverflow = errors.New("runlist overflow")

	// ErrUnknownAttributeType is non-fatal: preserved as Unknown(code),
	// never returned as an error to a caller that must abort.
	ErrUnknownAttributeType = errors.New("unknown attribute type")

	// ErrLogPageIncomplete means an RCRD page's client records could not
	// be fully reassembled; the page is dumped and excluded.
	ErrLogPageIncomplete = errors.New("logfile page incomplete")

	// ErrUsnRecordTruncated means a USN record's declared length ran past
	// the end of the $J stream.
	ErrUsnRecordTruncated = errors.New("usn record truncated")

	// ErrInumNotFound means a requested inum is absent from the MFT map.
	ErrInumNotFound = errors.New("inum not found")

	// ErrTransactionLsnNotStrictlyAscending means two client records
	// assembled into the same transaction share an LSN; §8 requires LSNs
	// within a transaction's opcode list to be strictly ascending.
	ErrTransactionLsnNotStrictlyAscending = errors.New("transaction lsn not strictly ascending")
)

// BadSignature formats a mismatched-magic error with the expected and found
// values, still matching errors.Is(err, ErrBadSignature).
func BadSignature(expected, found uint32) error {
	return fmt.Errorf("%w: expected 0x%08x, found 0x%08x", ErrBadSignature, expected, found)
}

// ReadOutOfRange formats an out-of-range read with the offending extent.
func ReadOutOfRange(offset, length, size int64) error {
	return fmt.Errorf("%w: offset=%d length=%d image_size=%d", ErrReadOutOfRange, offset, length, size)
}
