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

package ntfsimage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBootSector(sectorSize int, sectorsPerCluster int, clustersPerMftRecord int8, mftLcn uint64) []byte {
	buf := make([]byte, bootSectorSize)
	copy(buf[oemIDOffset:], []byte(expectedOEMID))
	binary.LittleEndian.PutUint16(buf[bytesPerSecOff:], uint16(sectorSize))
	buf[secsPerClusOff] = byte(sectorsPerCluster)
	binary.LittleEndian.PutUint64(buf[totalSectorsOff:], 1000)
	binary.LittleEndian.PutUint64(buf[mftLcnOff:], mftLcn)
	buf[clustersPerMftOff] = byte(clustersPerMftRecord)
	return buf
}

func TestDecodeBootSector_DecodesGeometry(t *testing.T) {
	raw := buildBootSector(512, 8, -10 /* 1<<10 = 1024-byte records */, 4)
	r := NewReader(bytes.NewReader(raw), int64(len(raw)))

	g, err := DecodeBootSector(r, 0)

	require.NoError(t, err)
	assert.Equal(t, 512, g.SectorSize)
	assert.Equal(t, 8, g.SectorsPerCluster)
	assert.Equal(t, 4096, g.BytesPerCluster)
	assert.Equal(t, 1024, g.MftRecordSize)
	assert.Equal(t, int64(4*4096), g.MftStartOffsetBytes)
}

func TestDecodeBootSector_PositiveClustersPerMftRecord(t *testing.T) {
	raw := buildBootSector(512, 8, 2, 0)
	r := NewReader(bytes.NewReader(raw), int64(len(raw)))

	g, err := DecodeBootSector(r, 0)

	require.NoError(t, err)
	assert.Equal(t, 2*4096, g.MftRecordSize)
}

func TestDecodeBootSector_BadOEMIDIsNotNtfs(t *testing.T) {
	raw := buildBootSector(512, 8, -10, 4)
	copy(raw[oemIDOffset:], []byte("FAT32   "))
	r := NewReader(bytes.NewReader(raw), int64(len(raw)))

	_, err := DecodeBootSector(r, 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrNotNtfs))
}

func TestOffset_PrefersOffsetBytesOverSectors(t *testing.T) {
	assert.Equal(t, int64(9000), Offset(5, 9000, 512))
}

func TestOffset_FallsBackToSectors(t *testing.T) {
	assert.Equal(t, int64(5*512), Offset(5, 0, 512))
}

func TestOffset_DefaultsToZero(t *testing.T) {
	assert.Equal(t, int64(0), Offset(-1, 0, 512))
}
