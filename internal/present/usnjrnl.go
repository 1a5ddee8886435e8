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
	"github.com/NTFSparse/ntfs-parse/internal/mft"
	"github.com/NTFSparse/ntfs-parse/internal/usnjrnl"
)

// WriteUsnJrnlCSV renders histories (already grouped by entry/sequence, in
// ascending inum/sequence/file order) as one CSV row per record: usn, inum,
// sequence, parent_inum, ISO-8601 timestamp, symbolic reason flags, and
// file_name.
func WriteUsnJrnlCSV(path string, histories []usnjrnl.EntryHistory) error {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)
	cw.Write([]string{"usn", "inum", "sequence", "parent_inum", "timestamp", "reason", "file_name"})
	for _, eh := range histories {
		for _, bucket := range eh.Sequences {
			for _, r := range bucket.Records {
				cw.Write([]string{
					fmt.Sprintf("%d", r.Usn),
					fmt.Sprintf("%d", r.FileReference.Inum),
					fmt.Sprintf("%d", r.FileReference.Sequence),
					fmt.Sprintf("%d", r.ParentReference.Inum),
					mft.FiletimeToTime(r.TimestampFiletime).Format("2006-01-02T15:04:05.000000000Z"),
					r.Reason.Symbols(),
					r.FileName,
				})
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return diag.WriteAtomic(path, []byte(sb.String()), 0o644)
}
