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

func TestLocateJStream_FindsNamedDataStream(t *testing.T) {
	entries := map[uint64]mft.MftEntry{
		11: {
			Inum: 11,
			Attributes: map[mft.AttributeType][]mft.Attribute{
				mft.AttrFileName: {{Type: mft.AttrFileName, FileName: &mft.FileNameAttribute{Namespace: mft.NamespaceWin32, Name: "$UsnJrnl"}}},
				mft.AttrData: {
					{Type: mft.AttrData, Name: "$Max"},
					{Type: mft.AttrData, Name: "$J"},
				},
			},
		},
	}

	inum, ordinal, err := LocateJStream(entries)

	require.NoError(t, err)
	assert.Equal(t, uint64(11), inum)
	assert.Equal(t, 1, ordinal)
}

func TestLocateJStream_NotFoundIsAnError(t *testing.T) {
	entries := map[uint64]mft.MftEntry{
		1: {Inum: 1, Attributes: map[mft.AttributeType][]mft.Attribute{}},
	}

	_, _, err := LocateJStream(entries)

	assert.Error(t, err)
}
