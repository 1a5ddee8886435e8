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

package mft

import (
	"encoding/binary"
	"fmt"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
	"github.com/NTFSparse/ntfs-parse/internal/ntfsimage"
)

var fileRecordSignature = [4]byte{'F', 'I', 'L', 'E'}

const (
	recSequenceValue   = 0x10
	recAttrsOffset     = 0x14
	recFlags           = 0x16
	recUsedSize        = 0x18
	recAllocatedSize   = 0x1C
	recBaseFileRecord  = 0x20

	flagInUse     = 0x0001
	flagDirectory = 0x0002
)

// DecodeRecord applies fixups to raw (one whole MFT record, sectorSize
// sectors) and decodes its header plus attribute list into an MftEntry.
// inum is the record's own index, supplied by the caller since it is not
// stored in the record body.
func DecodeRecord(raw []byte, sectorSize int, inum uint64) (MftEntry, error) {
	buf, err := ntfsimage.ApplyFixups(raw, sectorSize)
	if err != nil {
		return MftEntry{}, err
	}

	if len(buf) < recBaseFileRecord+8 {
		return MftEntry{}, fmt.Errorf("record %d: too small for FILE header", inum)
	}
	if [4]byte(buf[0:4]) != fileRecordSignature {
		return MftEntry{}, fmt.Errorf("%w: record %d", diag.ErrBadSignature, inum)
	}

	sequenceValue := binary.LittleEndian.Uint16(buf[recSequenceValue:])
	attrsOffset := binary.LittleEndian.Uint16(buf[recAttrsOffset:])
	flags := binary.LittleEndian.Uint16(buf[recFlags:])
	usedSize := binary.LittleEndian.Uint32(buf[recUsedSize:])
	baseReferenceRaw := binary.LittleEndian.Uint64(buf[recBaseFileRecord:])

	if int(usedSize) > len(buf) || int(attrsOffset) > int(usedSize) {
		return MftEntry{}, fmt.Errorf("record %d: used_size/attrs_offset out of range", inum)
	}

	attrs, err := DecodeAttributes(buf[attrsOffset:usedSize])
	if err != nil {
		return MftEntry{}, fmt.Errorf("record %d: %w", inum, err)
	}

	entry := MftEntry{
		Inum:          inum,
		SequenceValue: sequenceValue,
		IsInUse:       flags&flagInUse != 0,
		IsDirectory:   flags&flagDirectory != 0,
		BaseReference: baseReferenceRaw & 0x0000FFFFFFFFFFFF,
		Attributes:    make(map[AttributeType][]Attribute, len(attrs)),
	}
	for _, a := range attrs {
		entry.Attributes[a.Type] = append(entry.Attributes[a.Type], a)
	}

	return entry, nil
}
