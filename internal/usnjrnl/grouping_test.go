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

package usnjrnl

import (
	"testing"

	"github.com/NTFSparse/ntfs-parse/internal/mft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByEntry_BucketsByInumThenSequence(t *testing.T) {
	records := []Record{
		{Usn: 1, FileReference: mft.FileReference{Inum: 5, Sequence: 2}},
		{Usn: 2, FileReference: mft.FileReference{Inum: 5, Sequence: 1}},
		{Usn: 3, FileReference: mft.FileReference{Inum: 5, Sequence: 2}},
		{Usn: 4, FileReference: mft.FileReference{Inum: 1, Sequence: 1}},
	}

	histories := GroupByEntry(records)

	require.Len(t, histories, 2)
	assert.Equal(t, uint64(1), histories[0].Inum) // ascending inum
	assert.Equal(t, uint64(5), histories[1].Inum)

	inum5 := histories[1]
	require.Len(t, inum5.Sequences, 2)
	assert.Equal(t, uint16(1), inum5.Sequences[0].SequenceValue) // ascending sequence
	assert.Equal(t, uint16(2), inum5.Sequences[1].SequenceValue)
	require.Len(t, inum5.Sequences[1].Records, 2)
	assert.Equal(t, int64(1), inum5.Sequences[1].Records[0].Usn) // stream order preserved
	assert.Equal(t, int64(3), inum5.Sequences[1].Records[1].Usn)
}

func TestGroupByEntry_EmptyInput(t *testing.T) {
	histories := GroupByEntry(nil)

	assert.Empty(t, histories)
}
