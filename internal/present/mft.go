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

// Package present renders decoded data model values as text, CSV, and
// box-drawing reports. It never mutates or reinterprets the data model; it
// only formats it, and writes files through diag.WriteAtomic so a run that
// dies mid-render never leaves a truncated report behind.
package present

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
	"github.com/NTFSparse/ntfs-parse/internal/mft"
)

// WriteMftExport renders every entry in entries (sorted ascending by inum)
// as one text block each to path.
func WriteMftExport(path string, entries map[uint64]mft.MftEntry) error {
	var sb strings.Builder
	for _, inum := range sortedInums(entries) {
		writeMftEntryText(&sb, entries[inum])
	}
	return diag.WriteAtomic(path, []byte(sb.String()), 0o644)
}

func writeMftEntryText(w io.StringWriter, e mft.MftEntry) {
	fmt.Fprintf(stringWriterAsFormatter{w}, "inum=%d sequence_value=%d in_use=%t directory=%t base_reference=%d name=%q\n",
		e.Inum, e.SequenceValue, e.IsInUse, e.IsDirectory, e.BaseReference, e.CurrentFileName())
	var types []mft.AttributeType
	for t := range e.Attributes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		for _, a := range e.Attributes[t] {
			form := "resident"
			size := len(a.ResidentData)
			if a.Form == mft.NonResident {
				form = "non-resident"
				size = int(a.RealSize)
			}
			fmt.Fprintf(stringWriterAsFormatter{w}, "  %s name=%q form=%s size=%d\n", t, a.Name, form, size)
		}
	}
}

// WriteMftStatistics writes one summary line per inum (inum, in_use,
// directory, current_name, data_stream_count) as CSV to path.
func WriteMftStatistics(path string, entries map[uint64]mft.MftEntry) error {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)
	cw.Write([]string{"inum", "in_use", "directory", "current_name", "data_stream_count"})
	for _, inum := range sortedInums(entries) {
		e := entries[inum]
		cw.Write([]string{
			fmt.Sprintf("%d", e.Inum),
			fmt.Sprintf("%t", e.IsInUse),
			fmt.Sprintf("%t", e.IsDirectory),
			e.CurrentFileName(),
			fmt.Sprintf("%d", len(e.DataAttributes())),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return diag.WriteAtomic(path, []byte(sb.String()), 0o644)
}

// WriteExtractedData writes raw to path verbatim; used by `mft extractdata`.
func WriteExtractedData(path string, raw []byte) error {
	return diag.WriteAtomic(path, raw, 0o644)
}

func sortedInums(entries map[uint64]mft.MftEntry) []uint64 {
	out := make([]uint64, 0, len(entries))
	for inum := range entries {
		out = append(out, inum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// stringWriterAsFormatter adapts an io.StringWriter (e.g. *strings.Builder)
// to fmt.Fprintf's io.Writer requirement without importing bytes here.
type stringWriterAsFormatter struct{ w io.StringWriter }

func (s stringWriterAsFormatter) Write(p []byte) (int, error) {
	n, err := s.w.WriteString(string(p))
	return n, err
}
