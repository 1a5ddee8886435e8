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
	"os"
	"path/filepath"
	"testing"

	"time"

	"github.com/NTFSparse/ntfs-parse/internal/clock"
	"github.com/NTFSparse/ntfs-parse/internal/correlate"
	"github.com/NTFSparse/ntfs-parse/internal/usnjrnl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedClock = clock.NewSimulatedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

func sampleHistories() []correlate.MftEntryHistory {
	return []correlate.MftEntryHistory{
		{
			Inum:            3,
			CurrentName:     "deleted.txt",
			CurrentSequence: 2,
			EntryPresent:    true,
			Sequences: []correlate.SequenceHistory{
				{SequenceValue: 1, UsnRecords: []usnjrnl.Record{{Usn: 1, FileName: "deleted.txt"}}, Matches: [][]correlate.Match{nil}},
				{SequenceValue: 2, UsnRecords: []usnjrnl.Record{{Usn: 2, FileName: "deleted.txt"}}, Matches: [][]correlate.Match{nil}},
			},
		},
	}
}

func TestWriteHistoryReport_IncludesAllSequencesByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")

	err := WriteHistoryReport(path, sampleHistories(), false, fixedClock)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "sequence_value=1")
	assert.Contains(t, content, "sequence_value=2")
}

func TestWriteHistoryReport_DeletedOnlyExcludesCurrentSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")

	err := WriteHistoryReport(path, sampleHistories(), true, fixedClock)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "sequence_value=1")
	assert.NotContains(t, content, "sequence_value=2")
}

func TestWriteHistoryReport_IncludesInUseFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	histories := sampleHistories()
	histories[0].IsInUse = true

	err := WriteHistoryReport(path, histories, false, fixedClock)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "in_use=true")
}

func TestWriteHistoryReport_DeletedOnlyWithNoOlderSequencesStatesSo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	histories := []correlate.MftEntryHistory{
		{
			Inum:            9,
			CurrentName:     "current.txt",
			CurrentSequence: 1,
			EntryPresent:    true,
			Sequences: []correlate.SequenceHistory{
				{SequenceValue: 1, UsnRecords: []usnjrnl.Record{{Usn: 1, FileName: "current.txt"}}, Matches: [][]correlate.Match{nil}},
			},
		},
	}

	err := WriteHistoryReport(path, histories, true, fixedClock)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "no deleted log data available")
	assert.NotContains(t, content, "sequence_value=")
}
