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

package logfile

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
)

// UsnReference ties one LSN to a USN value its redo payload was found to
// carry, so the correlator can look transactions up by USN value without
// re-scanning redo data.
type UsnReference struct {
	Lsn uint64
	Usn uint64
}

// Transaction is every client record sharing a transaction_id, ordered by
// LSN ascending.
type Transaction struct {
	TransactionID uint32
	Records       []ClientRecord
	ContainsUsn   bool
	Usns          []UsnReference
}

// AssembleTransactions groups records (already in LSN-ascending order, the
// order they are produced in by walkClientRecords) by TransactionID and
// derives ContainsUsn/Usns from UpdateNonresidentValue-family redo ops
// whose redo payload decodes as a $UsnJrnl $J record. It also reports a
// diagnostic for every transaction whose assembled Records are not
// strictly LSN-ascending -- two client records sharing an LSN violate the
// invariant that all_opcodes is strictly ascending within a transaction,
// but this does not drop the transaction; it is surfaced, not fatal.
func AssembleTransactions(records []ClientRecord) ([]Transaction, []diag.Diagnostic) {
	order := make([]uint32, 0)
	byID := make(map[uint32]*Transaction)

	for _, rec := range records {
		t, ok := byID[rec.TransactionID]
		if !ok {
			t = &Transaction{TransactionID: rec.TransactionID}
			byID[rec.TransactionID] = t
			order = append(order, rec.TransactionID)
		}
		t.Records = append(t.Records, rec)

		if rec.RedoOp.IsNonresidentValueUpdate() {
			if usn, ok := sniffUsnRecord(rec.RedoData); ok {
				t.ContainsUsn = true
				t.Usns = append(t.Usns, UsnReference{Lsn: rec.Lsn, Usn: usn})
			}
		}
	}

	out := make([]Transaction, 0, len(order))
	var diags []diag.Diagnostic
	for _, id := range order {
		t := *byID[id]
		sort.Slice(t.Records, func(i, j int) bool { return t.Records[i].Lsn < t.Records[j].Lsn })
		for i := 1; i < len(t.Records); i++ {
			if t.Records[i].Lsn <= t.Records[i-1].Lsn {
				diags = append(diags, diag.Diagnostic{
					Artifact: "logfile",
					Offset:   int64(t.Records[i].Lsn),
					Err:      fmt.Errorf("%w: transaction_id=%d lsn=%d", diag.ErrTransactionLsnNotStrictlyAscending, t.TransactionID, t.Records[i].Lsn),
				})
			}
		}
		out = append(out, t)
	}
	return out, diags
}

// sniffUsnRecord reports whether data begins with a plausible USN_RECORD_V2
// header and, if so, returns the Usn field. This is how $UsnJrnl writes,
// which are logged as ordinary $DATA updates against $J of $UsnJrnl, are
// distinguished from any other UpdateNonresidentValue record without
// needing to resolve the target attribute through the MFT.
func sniffUsnRecord(data []byte) (uint64, bool) {
	const (
		minHeaderSize    = 0x40
		offRecordLength  = 0x00
		offMajorVersion  = 0x04
		offMinorVersion  = 0x06
		offUsn           = 0x18
	)
	if len(data) < minHeaderSize {
		return 0, false
	}
	recordLength := binary.LittleEndian.Uint32(data[offRecordLength:])
	majorVersion := binary.LittleEndian.Uint16(data[offMajorVersion:])
	minorVersion := binary.LittleEndian.Uint16(data[offMinorVersion:])
	if majorVersion != 2 || minorVersion != 0 {
		return 0, false
	}
	if int(recordLength) < minHeaderSize || int(recordLength) > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(data[offUsn:]), true
}
