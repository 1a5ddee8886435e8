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

package present

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
	"github.com/NTFSparse/ntfs-parse/internal/logfile"
)

// WriteLogFileText renders every transaction, in the order given, as a text
// block to path.
func WriteLogFileText(path string, transactions []logfile.Transaction) error {
	var sb strings.Builder
	for _, t := range transactions {
		writeTransactionText(&sb, t)
	}
	return diag.WriteAtomic(path, []byte(sb.String()), 0o644)
}

func writeTransactionText(sb *strings.Builder, t logfile.Transaction) {
	fmt.Fprintf(sb, "transaction_id=%d contains_usn=%t record_count=%d\n", t.TransactionID, t.ContainsUsn, len(t.Records))
	for _, r := range t.Records {
		fmt.Fprintf(sb, "  lsn=%d redo_op=%s undo_op=%s target_attribute_type=0x%x\n", r.Lsn, r.RedoOp, r.UndoOp, r.Target.AttributeTypeCode)
	}
	for _, u := range t.Usns {
		fmt.Fprintf(sb, "  usn=%d @ lsn=%d\n", u.Usn, u.Lsn)
	}
}

// WriteLogFileCSV renders one row per client record (transaction_id, lsn,
// previous_lsn, redo_op, undo_op, target_attribute_type) as CSV to path.
func WriteLogFileCSV(path string, transactions []logfile.Transaction) error {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)
	cw.Write([]string{"transaction_id", "lsn", "previous_lsn", "redo_op", "undo_op", "target_attribute_type"})
	for _, t := range transactions {
		for _, r := range t.Records {
			cw.Write([]string{
				fmt.Sprintf("%d", t.TransactionID),
				fmt.Sprintf("%d", r.Lsn),
				fmt.Sprintf("%d", r.PreviousLsn),
				r.RedoOp.String(),
				r.UndoOp.String(),
				fmt.Sprintf("0x%x", r.Target.AttributeTypeCode),
			})
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return diag.WriteAtomic(path, []byte(sb.String()), 0o644)
}

// WriteLogFilePerTransaction writes one file per transaction, named
// dir/transaction-<id>.txt.
func WriteLogFilePerTransaction(dir string, transactions []logfile.Transaction) error {
	if err := diag.EnsureDir(dir); err != nil {
		return err
	}
	for _, t := range transactions {
		var sb strings.Builder
		writeTransactionText(&sb, t)
		path := fmt.Sprintf("%s/transaction-%d.txt", dir, t.TransactionID)
		if err := diag.WriteAtomic(path, []byte(sb.String()), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// WriteLogFileFiltered renders only transactions for which keep returns
// true, in the same text form as WriteLogFileText.
func WriteLogFileFiltered(path string, transactions []logfile.Transaction, keep func(logfile.Transaction) bool) error {
	var filtered []logfile.Transaction
	for _, t := range transactions {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return WriteLogFileText(path, filtered)
}
