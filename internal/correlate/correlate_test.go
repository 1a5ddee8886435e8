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

package correlate

import (
	"testing"

	"github.com/NTFSparse/ntfs-parse/internal/logfile"
	"github.com/NTFSparse/ntfs-parse/internal/mft"
	"github.com/NTFSparse/ntfs-parse/internal/usnjrnl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_MatchesTransactionByUsn(t *testing.T) {
	usnHistories := []usnjrnl.EntryHistory{
		{
			Inum: 5,
			Sequences: []usnjrnl.SequenceBucket{
				{SequenceValue: 1, Records: []usnjrnl.Record{{Usn: 100}}},
			},
		},
	}
	entries := map[uint64]mft.MftEntry{
		5: {Inum: 5, SequenceValue: 1, Attributes: map[mft.AttributeType][]mft.Attribute{}},
	}
	transactions := []logfile.Transaction{
		{TransactionID: 1, Usns: []logfile.UsnReference{{Lsn: 50, Usn: 100}}},
	}

	out := Build(usnHistories, entries, transactions)

	require.Len(t, out, 1)
	require.Len(t, out[0].Sequences, 1)
	require.Len(t, out[0].Sequences[0].Matches, 1)
	require.Len(t, out[0].Sequences[0].Matches[0], 1)
	assert.Equal(t, uint64(50), out[0].Sequences[0].Matches[0][0].Lsn)
	assert.Equal(t, uint32(1), out[0].Sequences[0].Matches[0][0].Transaction.TransactionID)
}

func TestBuild_NoMatchYieldsEmptySlice(t *testing.T) {
	usnHistories := []usnjrnl.EntryHistory{
		{Inum: 1, Sequences: []usnjrnl.SequenceBucket{{SequenceValue: 1, Records: []usnjrnl.Record{{Usn: 999}}}}},
	}

	out := Build(usnHistories, map[uint64]mft.MftEntry{}, nil)

	require.Len(t, out, 1)
	assert.Empty(t, out[0].Sequences[0].Matches[0])
}

func TestBuild_PopulatesIsInUseFromMftEntry(t *testing.T) {
	usnHistories := []usnjrnl.EntryHistory{{Inum: 7}}
	entries := map[uint64]mft.MftEntry{
		7: {Inum: 7, SequenceValue: 1, IsInUse: true, Attributes: map[mft.AttributeType][]mft.Attribute{}},
	}

	out := Build(usnHistories, entries, nil)

	require.Len(t, out, 1)
	assert.True(t, out[0].IsInUse)
}

func TestBuild_MissingMftEntryMarksNotPresent(t *testing.T) {
	usnHistories := []usnjrnl.EntryHistory{
		{Inum: 42, Sequences: nil},
	}

	out := Build(usnHistories, map[uint64]mft.MftEntry{}, nil)

	require.Len(t, out, 1)
	assert.False(t, out[0].EntryPresent)
	assert.Equal(t, "~unknown~", out[0].CurrentName)
}

func TestDeletedSequences_FiltersBySequenceValue(t *testing.T) {
	h := MftEntryHistory{
		CurrentSequence: 3,
		Sequences: []SequenceHistory{
			{SequenceValue: 1},
			{SequenceValue: 2},
			{SequenceValue: 3},
		},
	}

	deleted := h.DeletedSequences()

	require.Len(t, deleted, 2)
	assert.Equal(t, uint16(1), deleted[0].SequenceValue)
	assert.Equal(t, uint16(2), deleted[1].SequenceValue)
}

func TestDeletedSequences_EmptyWhenCurrentSequenceIsLowest(t *testing.T) {
	h := MftEntryHistory{
		CurrentSequence: 0,
		Sequences:       []SequenceHistory{{SequenceValue: 0}},
	}

	assert.Empty(t, h.DeletedSequences())
}

func TestBuildUsnIndex_OrdersByAscendingLsn(t *testing.T) {
	transactions := []logfile.Transaction{
		{TransactionID: 1, Usns: []logfile.UsnReference{{Lsn: 300, Usn: 7}}},
		{TransactionID: 2, Usns: []logfile.UsnReference{{Lsn: 100, Usn: 7}}},
	}

	idx := buildUsnIndex(transactions)

	require.Len(t, idx[7], 2)
	assert.Equal(t, uint64(100), idx[7][0].lsn)
	assert.Equal(t, uint64(300), idx[7][1].lsn)
}
