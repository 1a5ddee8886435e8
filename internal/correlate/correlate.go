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

// Package correlate joins decoded $UsnJrnl records to the $LogFile
// transactions that wrote them, producing a per-inode history that spans
// both artifacts.
package correlate

import (
	"sort"

	"github.com/NTFSparse/ntfs-parse/internal/logfile"
	"github.com/NTFSparse/ntfs-parse/internal/mft"
	"github.com/NTFSparse/ntfs-parse/internal/usnjrnl"
)

const unknownName = "~unknown~"

// Match is one $UsnJrnl record joined to one $LogFile transaction that
// carried its usn value; the same (record, transaction) pair never
// deduplicates against another match sharing either side.
type Match struct {
	Transaction logfile.Transaction
	Lsn         uint64
}

// SequenceHistory is every USN record seen for one (inum, sequence_value)
// pair plus the $LogFile matches found for each.
type SequenceHistory struct {
	SequenceValue uint16
	UsnRecords    []usnjrnl.Record
	Matches       [][]Match // Matches[i] corresponds to UsnRecords[i]
}

// MftEntryHistory is the complete correlated history for one inum.
type MftEntryHistory struct {
	Inum            uint64
	CurrentName     string
	CurrentSequence uint16
	IsInUse         bool
	EntryPresent    bool
	Sequences       []SequenceHistory
}

// DeletedSequences returns the subset of h.Sequences whose SequenceValue is
// strictly less than h.CurrentSequence -- the history of sequence slots
// this inum has since moved past.
func (h MftEntryHistory) DeletedSequences() []SequenceHistory {
	var out []SequenceHistory
	for _, s := range h.Sequences {
		if s.SequenceValue < h.CurrentSequence {
			out = append(out, s)
		}
	}
	return out
}

type usnIndexEntry struct {
	lsn         uint64
	transaction logfile.Transaction
}

// usnIndex maps a usn value to every transaction observed carrying it, in
// ascending LSN order, built once per Build call rather than per lookup.
type usnIndex map[int64][]usnIndexEntry

func buildUsnIndex(transactions []logfile.Transaction) usnIndex {
	idx := make(usnIndex)
	for _, t := range transactions {
		for _, ref := range t.Usns {
			idx[int64(ref.Usn)] = append(idx[int64(ref.Usn)], usnIndexEntry{lsn: ref.Lsn, transaction: t})
		}
	}
	for usn := range idx {
		entries := idx[usn]
		sort.Slice(entries, func(i, j int) bool { return entries[i].lsn < entries[j].lsn })
		idx[usn] = entries
	}
	return idx
}

// Build joins usnHistories (already grouped and ordered by usnjrnl.GroupByEntry,
// ascending inum / ascending sequence_value / file order within a sequence)
// against transactions via a usn -> []Transaction index, producing one
// MftEntryHistory per inum in the same ascending order.
func Build(usnHistories []usnjrnl.EntryHistory, entries map[uint64]mft.MftEntry, transactions []logfile.Transaction) []MftEntryHistory {
	idx := buildUsnIndex(transactions)

	out := make([]MftEntryHistory, 0, len(usnHistories))
	for _, eh := range usnHistories {
		entry, present := entries[eh.Inum]

		h := MftEntryHistory{
			Inum:         eh.Inum,
			CurrentName:  unknownName,
			EntryPresent: present,
		}
		if present {
			h.CurrentName = entry.CurrentFileName()
			h.CurrentSequence = entry.SequenceValue
			h.IsInUse = entry.IsInUse
		}

		for _, bucket := range eh.Sequences {
			sh := SequenceHistory{
				SequenceValue: bucket.SequenceValue,
				UsnRecords:    bucket.Records,
				Matches:       make([][]Match, len(bucket.Records)),
			}
			for i, rec := range bucket.Records {
				for _, ie := range idx[rec.Usn] {
					sh.Matches[i] = append(sh.Matches[i], Match{Transaction: ie.transaction, Lsn: ie.lsn})
				}
			}
			h.Sequences = append(h.Sequences, sh)
		}

		out = append(out, h)
	}
	return out
}
