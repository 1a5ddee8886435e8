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
	"unicode/utf16"
)

const (
	attrHdrTypeCode     = 0x00
	attrHdrRecordLength = 0x04
	attrHdrNonResident  = 0x08
	attrHdrNameLength   = 0x09
	attrHdrNameOffset   = 0x0A
	attrHdrFlags        = 0x0C
	attrHdrAttributeID  = 0x0E

	attrResContentLength = 0x10
	attrResContentOffset = 0x14
	attrResIndexedFlag   = 0x16
	attrResContentStart  = 0x18

	attrNRStartingVCN    = 0x10
	attrNRLastVCN        = 0x18
	attrNRRunlistOffset  = 0x20
	attrNRAllocatedSize  = 0x28
	attrNRRealSize       = 0x30
	attrNRInitSize       = 0x38
)

// DecodeAttributes walks body (the portion of an MFT record following its
// fixed header, fixups already applied) decoding attributes until the
// 0xFFFFFFFF terminator or the end of body. Unknown attribute types are
// decoded down to their common header and runlist/resident payload but
// carry a nil typed payload.
func DecodeAttributes(body []byte) ([]Attribute, error) {
	var attrs []Attribute
	pos := 0

	for pos+4 <= len(body) {
		typeCode := binary.LittleEndian.Uint32(body[pos+attrHdrTypeCode:])
		if AttributeType(typeCode) == AttrEndOfList {
			break
		}
		if pos+attrHdrAttributeID+2 > len(body) {
			break
		}
		recordLength := binary.LittleEndian.Uint32(body[pos+attrHdrRecordLength:])
		if recordLength < 16 || pos+int(recordLength) > len(body) {
			return attrs, fmt.Errorf("attribute at %d has invalid record_length %d", pos, recordLength)
		}
		raw := body[pos : pos+int(recordLength)]

		attr, err := decodeOneAttribute(raw)
		if err != nil {
			return attrs, fmt.Errorf("decoding attribute at %d: %w", pos, err)
		}
		attrs = append(attrs, attr)

		pos += int(recordLength)
	}

	return attrs, nil
}

func decodeOneAttribute(raw []byte) (Attribute, error) {
	typeCode := AttributeType(binary.LittleEndian.Uint32(raw[attrHdrTypeCode:]))
	nonResident := raw[attrHdrNonResident] != 0
	nameLength := int(raw[attrHdrNameLength])
	nameOffset := int(binary.LittleEndian.Uint16(raw[attrHdrNameOffset:]))
	flags := binary.LittleEndian.Uint16(raw[attrHdrFlags:])
	attributeID := binary.LittleEndian.Uint16(raw[attrHdrAttributeID:])

	var name string
	if nameLength > 0 {
		if nameOffset+nameLength*2 > len(raw) {
			return Attribute{}, fmt.Errorf("attribute name runs past end of attribute")
		}
		name = decodeUTF16Name(raw[nameOffset : nameOffset+nameLength*2])
	}

	attr := Attribute{
		Type:        typeCode,
		Name:        name,
		AttributeID: attributeID,
		Flags:       flags,
	}

	if !nonResident {
		attr.Form = Resident
		contentLength := binary.LittleEndian.Uint32(raw[attrResContentLength:])
		contentOffset := binary.LittleEndian.Uint16(raw[attrResContentOffset:])
		attr.Indexed = raw[attrResIndexedFlag] != 0
		if int(contentOffset)+int(contentLength) > len(raw) {
			return Attribute{}, fmt.Errorf("resident content runs past end of attribute")
		}
		attr.ResidentData = append([]byte(nil), raw[contentOffset:int(contentOffset)+int(contentLength)]...)
		decodeKnownResidentPayload(&attr)
		return attr, nil
	}

	attr.Form = NonResident
	attr.StartingVCN = binary.LittleEndian.Uint64(raw[attrNRStartingVCN:])
	attr.LastVCN = binary.LittleEndian.Uint64(raw[attrNRLastVCN:])
	runlistOffset := binary.LittleEndian.Uint16(raw[attrNRRunlistOffset:])
	attr.AllocatedSize = binary.LittleEndian.Uint64(raw[attrNRAllocatedSize:])
	attr.RealSize = binary.LittleEndian.Uint64(raw[attrNRRealSize:])
	attr.InitializedSize = binary.LittleEndian.Uint64(raw[attrNRInitSize:])

	if int(runlistOffset) > len(raw) {
		return Attribute{}, fmt.Errorf("runlist offset runs past end of attribute")
	}
	runlist, err := DecodeRunlist(raw[runlistOffset:])
	if err != nil {
		return Attribute{}, err
	}
	attr.Runlist = runlist

	return attr, nil
}

func decodeKnownResidentPayload(attr *Attribute) {
	switch attr.Type {
	case AttrStandardInformation:
		if len(attr.ResidentData) >= 48 {
			d := attr.ResidentData
			attr.StandardInformation = &StandardInformation{
				CreationTime:         binary.LittleEndian.Uint64(d[0:]),
				ModificationTime:     binary.LittleEndian.Uint64(d[8:]),
				MftModificationTime:  binary.LittleEndian.Uint64(d[16:]),
				AccessTime:           binary.LittleEndian.Uint64(d[24:]),
				FileAttributes:       binary.LittleEndian.Uint32(d[32:]),
			}
		}
	case AttrFileName:
		attr.FileName = decodeFileName(attr.ResidentData)
	}
}

func decodeFileName(d []byte) *FileNameAttribute {
	const fixedHeaderSize = 66
	if len(d) < fixedHeaderSize {
		return nil
	}
	parentInumAndSeq := binary.LittleEndian.Uint64(d[0:])
	nameLength := int(d[64])
	namespace := Namespace(d[65])

	nameStart := fixedHeaderSize
	nameBytes := 2 * nameLength
	if nameStart+nameBytes > len(d) {
		return nil
	}

	return &FileNameAttribute{
		Parent: FileReference{
			Inum:     parentInumAndSeq & 0x0000FFFFFFFFFFFF,
			Sequence: uint16(parentInumAndSeq >> 48),
		},
		CreationTime:        binary.LittleEndian.Uint64(d[8:]),
		ModificationTime:    binary.LittleEndian.Uint64(d[16:]),
		MftModificationTime: binary.LittleEndian.Uint64(d[24:]),
		AccessTime:          binary.LittleEndian.Uint64(d[32:]),
		AllocatedSize:       binary.LittleEndian.Uint64(d[40:]),
		RealSize:            binary.LittleEndian.Uint64(d[48:]),
		FileAttributes:      binary.LittleEndian.Uint32(d[56:]),
		Namespace:           namespace,
		Name:                decodeUTF16Name(d[nameStart : nameStart+nameBytes]),
	}
}

func decodeUTF16Name(b []byte) string {
	u16 := make([]uint16, len(b)/2)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(u16))
}
