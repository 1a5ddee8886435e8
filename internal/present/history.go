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
	"fmt"
	"strings"
	"time"

	"github.com/NTFSparse/ntfs-parse/internal/clock"
	"github.com/NTFSparse/ntfs-parse/internal/correlate"
	"github.com/NTFSparse/ntfs-parse/internal/diag"
)

// WriteHistoryReport renders histories as a box-drawing report, one box per
// inum, each sequence_value as a labeled sub-section, each USN record
// listing its matched transactions (if any). clk stamps the report header
// with its generation time; pass a clock.SimulatedClock in tests that
// assert exact report contents.
func WriteHistoryReport(path string, histories []correlate.MftEntryHistory, deletedOnly bool, clk clock.Clock) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# generated_at=%s\n", clk.Now().Format(time.RFC3339))
	for _, h := range histories {
		writeEntryBox(&sb, h, deletedOnly)
	}
	return diag.WriteAtomic(path, []byte(sb.String()), 0o644)
}

func writeEntryBox(sb *strings.Builder, h correlate.MftEntryHistory, deletedOnly bool) {
	title := fmt.Sprintf(" inum=%d name=%q current_sequence=%d in_use=%t ", h.Inum, h.CurrentName, h.CurrentSequence, h.IsInUse)
	width := len(title) + 2
	if width < 40 {
		width = 40
	}
	border := strings.Repeat("─", width)
	fmt.Fprintf(sb, "┌%s┐\n", border)
	fmt.Fprintf(sb, "│%-*s│\n", width, title)
	fmt.Fprintf(sb, "└%s┘\n", border)

	sequences := h.Sequences
	if deletedOnly {
		sequences = h.DeletedSequences()
		if len(sequences) == 0 {
			fmt.Fprintln(sb, "  no deleted log data available")
			return
		}
	}
	for _, seq := range sequences {
		fmt.Fprintf(sb, "  sequence_value=%d\n", seq.SequenceValue)
		for i, rec := range seq.UsnRecords {
			fmt.Fprintf(sb, "    usn=%d reason=%s file_name=%q\n", rec.Usn, rec.Reason.Symbols(), rec.FileName)
			for _, m := range seq.Matches[i] {
				fmt.Fprintf(sb, "      matched transaction_id=%d @ lsn=%d\n", m.Transaction.TransactionID, m.Lsn)
			}
		}
	}
}
