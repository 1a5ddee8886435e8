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

// Fixup offsets common to every multi-sector NTFS structure (FILE records,
// RCRD pages, INDX blocks): a 4-byte magic, followed by a u16 offset to the
// update-sequence array and a u16 count of u16 entries in it.
const (
	UsaOffsetOffset = 0x04
	UsaCountOffset  = 0x06
)

// ApplyFixups verifies and restores the update-sequence-array fixups on a
// copy of raw, which must already be sized to a whole number of sectors.
// The original slice is never modified. Returns diag.ErrFixupMismatch if
// any sector's trailing two bytes don't match the USA signature.
func ApplyFixups(raw []byte, sectorSize int) ([]byte, error) {
	if sectorSize <= 0 || len(raw)%sectorSize != 0 {
		return nil, fmt.Errorf("fixup: structure size %d is not a multiple of sector size %d", len(raw), sectorSize)
	}

	buf := make([]byte, len(raw))
	copy(buf, raw)

	if len(buf) < UsaCountOffset+2 {
		return nil, fmt.Errorf("fixup: structure too small to hold USA header")
	}
	usaOffset := int(binary.LittleEndian.Uint16(buf[UsaOffsetOffset:]))
	usaCount := int(binary.LittleEndian.Uint16(buf[UsaCountOffset:]))
	numSectors := len(buf) / sectorSize

	if usaCount == 0 {
		return buf, nil
	}
	if usaCount-1 != numSectors {
		return nil, fmt.Errorf("fixup: usa_count %d does not match %d sectors", usaCount, numSectors)
	}
	if usaOffset+2*usaCount > len(buf) {
		return nil, fmt.Errorf("fixup: update-sequence array runs past end of structure")
	}

	signature := buf[usaOffset : usaOffset+2]
	for i := 0; i < numSectors; i++ {
		tailOff := i*sectorSize + sectorSize - 2
		if buf[tailOff] != signature[0] || buf[tailOff+1] != signature[1] {
			return nil, fmt.Errorf("%w: sector %d", diag.ErrFixupMismatch, i)
		}
		entryOff := usaOffset + 2*(i+1)
		buf[tailOff] = buf[entryOff]
		buf[tailOff+1] = buf[entryOff+1]
	}

	return buf, nil
}
