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
	"encoding/binary"
	"fmt"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
)

const (
	bootSectorSize   = 512
	oemIDOffset      = 0x03
	oemIDLength      = 8
	bytesPerSecOff   = 0x0B
	secsPerClusOff   = 0x0D
	totalSectorsOff  = 0x28
	mftLcnOff        = 0x30
	mftMirrorLcnOff  = 0x38
	clustersPerMftOff = 0x40

	expectedOEMID = "NTFS    "
)

// Geometry describes the layout of an NTFS filesystem within its
// containing image, as decoded from the boot sector.
type Geometry struct {
	SectorSize            int
	SectorsPerCluster     int
	BytesPerCluster       int
	TotalSectors          uint64
	MftLcn                uint64
	MftMirrorLcn          uint64
	MftRecordSize         int
	FilesystemOffsetBytes int64
	MftStartOffsetBytes   int64
}

// Offset resolves the filesystem's starting offset within the image as the
// first of offsetBytes (if nonzero), offsetSectors*sectorSize (if
// offsetSectors >= 0), or 0.
func Offset(offsetSectors int64, offsetBytes int64, sectorSize int) int64 {
	if offsetBytes != 0 {
		return offsetBytes
	}
	if offsetSectors >= 0 {
		return offsetSectors * int64(sectorSize)
	}
	return 0
}

// DecodeBootSector reads and decodes the 512-byte boot sector located at
// filesystemOffsetBytes within r, returning the volume Geometry.
func DecodeBootSector(r *Reader, filesystemOffsetBytes int64) (Geometry, error) {
	buf, err := r.Read(filesystemOffsetBytes, bootSectorSize)
	if err != nil {
		return Geometry{}, fmt.Errorf("reading boot sector: %w", err)
	}

	oemID := string(buf[oemIDOffset : oemIDOffset+oemIDLength])
	if oemID != expectedOEMID {
		return Geometry{}, fmt.Errorf("%w: OEM ID %q", diag.ErrNotNtfs, oemID)
	}

	sectorSize := int(binary.LittleEndian.Uint16(buf[bytesPerSecOff:]))
	sectorsPerCluster := int(buf[secsPerClusOff])
	totalSectors := binary.LittleEndian.Uint64(buf[totalSectorsOff:])
	mftLcn := binary.LittleEndian.Uint64(buf[mftLcnOff:])
	mftMirrorLcn := binary.LittleEndian.Uint64(buf[mftMirrorLcnOff:])
	clustersPerMftRecordRaw := int8(buf[clustersPerMftOff])

	if sectorSize <= 0 || sectorsPerCluster <= 0 {
		return Geometry{}, fmt.Errorf("%w: invalid geometry in boot sector", diag.ErrBadSignature)
	}
	bytesPerCluster := sectorSize * sectorsPerCluster

	var mftRecordSize int
	if clustersPerMftRecordRaw < 0 {
		mftRecordSize = 1 << uint(-clustersPerMftRecordRaw)
	} else {
		mftRecordSize = int(clustersPerMftRecordRaw) * bytesPerCluster
	}
	if mftRecordSize <= 0 || mftRecordSize%sectorSize != 0 {
		return Geometry{}, fmt.Errorf("%w: invalid MFT record size %d", diag.ErrBadSignature, mftRecordSize)
	}

	g := Geometry{
		SectorSize:            sectorSize,
		SectorsPerCluster:     sectorsPerCluster,
		BytesPerCluster:       bytesPerCluster,
		TotalSectors:          totalSectors,
		MftLcn:                mftLcn,
		MftMirrorLcn:          mftMirrorLcn,
		MftRecordSize:         mftRecordSize,
		FilesystemOffsetBytes: filesystemOffsetBytes,
		MftStartOffsetBytes:   filesystemOffsetBytes + int64(mftLcn)*int64(bytesPerCluster),
	}
	return g, nil
}
