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

// Package usnjrnl decodes the $J alternate data stream of $UsnJrnl: a
// sparse-headed sequence of USN_RECORD_V2 entries, one per change journal
// event, grouped by the MFT entry (inum, sequence_value) they describe.
package usnjrnl

import (
	"encoding/binary"
	"fmt"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
	"github.com/NTFSparse/ntfs-parse/internal/mft"
)

const (
	v2HeaderSize = 0x40

	offRecordLength            = 0x00
	offMajorVersion            = 0x04
	offMinorVersion            = 0x06
	offFileReferenceNumber     = 0x08
	offParentFileReferenceNumber = 0x10
	offUsn                     = 0x18
	offTimestamp               = 0x20
	offReason                  = 0x28
	offSourceInfo              = 0x2C
	offSecurityID              = 0x30
	offFileAttributes          = 0x34
	offFileNameLength          = 0x38
	offFileNameOffset          = 0x3A
)

// Reason is the bitmask of change types a USN record reports.
type Reason uint32

const (
	ReasonDataOverwrite      Reason = 0x00000001
	ReasonDataExtend         Reason = 0x00000002
	ReasonDataTruncation     Reason = 0x00000004
	ReasonNamedDataOverwrite Reason = 0x00000010
	ReasonNamedDataExtend    Reason = 0x00000020
	ReasonNamedDataTruncation Reason = 0x00000040
	ReasonFileCreate         Reason = 0x00000100
	ReasonFileDelete         Reason = 0x00000200
	ReasonEAChange           Reason = 0x00000400
	ReasonSecurityChange     Reason = 0x00000800
	ReasonRenameOldName      Reason = 0x00001000
	ReasonRenameNewName      Reason = 0x00002000
	ReasonIndexableChange    Reason = 0x00004000
	ReasonBasicInfoChange    Reason = 0x00008000
	ReasonHardLinkChange     Reason = 0x00010000
	ReasonCompressionChange  Reason = 0x00020000
	ReasonEncryptionChange   Reason = 0x00040000
	ReasonObjectIDChange     Reason = 0x00080000
	ReasonReparsePointChange Reason = 0x00100000
	ReasonStreamChange       Reason = 0x00200000
	ReasonTransactedChange   Reason = 0x00400000
	ReasonIntegrityChange    Reason = 0x00800000
	ReasonClose              Reason = 0x80000000
)

var reasonSymbols = []struct {
	bit Reason
	sym string
}{
	{ReasonDataOverwrite, "DATA_OVERWRITE"},
	{ReasonDataExtend, "DATA_EXTEND"},
	{ReasonDataTruncation, "DATA_TRUNCATION"},
	{ReasonNamedDataOverwrite, "NAMED_DATA_OVERWRITE"},
	{ReasonNamedDataExtend, "NAMED_DATA_EXTEND"},
	{ReasonNamedDataTruncation, "NAMED_DATA_TRUNCATION"},
	{ReasonFileCreate, "FILE_CREATE"},
	{ReasonFileDelete, "FILE_DELETE"},
	{ReasonEAChange, "EA_CHANGE"},
	{ReasonSecurityChange, "SECURITY_CHANGE"},
	{ReasonRenameOldName, "RENAME_OLD_NAME"},
	{ReasonRenameNewName, "RENAME_NEW_NAME"},
	{ReasonIndexableChange, "INDEXABLE_CHANGE"},
	{ReasonBasicInfoChange, "BASIC_INFO_CHANGE"},
	{ReasonHardLinkChange, "HARD_LINK_CHANGE"},
	{ReasonCompressionChange, "COMPRESSION_CHANGE"},
	{ReasonEncryptionChange, "ENCRYPTION_CHANGE"},
	{ReasonObjectIDChange, "OBJECT_ID_CHANGE"},
	{ReasonReparsePointChange, "REPARSE_POINT_CHANGE"},
	{ReasonStreamChange, "STREAM_CHANGE"},
	{ReasonTransactedChange, "TRANSACTED_CHANGE"},
	{ReasonIntegrityChange, "INTEGRITY_CHANGE"},
	{ReasonClose, "CLOSE"},
}

// Symbols renders r as its "|"-joined set of symbolic flag names, in
// declaration order, e.g. "FILE_CREATE|CLOSE".
func (r Reason) Symbols() string {
	var out string
	for _, s := range reasonSymbols {
		if r&s.bit != 0 {
			if out != "" {
				out += "|"
			}
			out += s.sym
		}
	}
	if out == "" {
		return "NONE"
	}
	return out
}

// Record is a decoded USN_RECORD_V2.
type Record struct {
	Usn              int64
	FileReference    mft.FileReference
	ParentReference  mft.FileReference
	TimestampFiletime uint64
	Reason           Reason
	SourceInfo       uint32
	SecurityID       uint32
	FileAttributes   uint32
	FileName         string
}

// DecodeRecords sequentially decodes every USN_RECORD_V2 in stream (the
// full $J data, including its sparse head), returning them in stream
// order. A zero record_length ends the current run of records; the scan
// skips the padding and resumes at the next 8-byte-aligned position whose
// length field is nonzero.
func DecodeRecords(stream []byte) ([]Record, []diag.Diagnostic) {
	var records []Record
	var diags []diag.Diagnostic

	pos := 0
	for pos+4 <= len(stream) {
		recordLength := binary.LittleEndian.Uint32(stream[pos:])
		if recordLength == 0 {
			pos = skipSparsePadding(stream, pos)
			continue
		}
		if pos+int(recordLength) > len(stream) || recordLength < v2HeaderSize {
			diags = append(diags, diag.Diagnostic{
				Artifact: "usnjrnl",
				Offset:   int64(pos),
				Err:      fmt.Errorf("%w: record_length %d at offset %d", diag.ErrUsnRecordTruncated, recordLength, pos),
			})
			break
		}

		raw := stream[pos : pos+int(recordLength)]
		rec, err := decodeOneRecord(raw)
		if err != nil {
			diags = append(diags, diag.Diagnostic{Artifact: "usnjrnl", Offset: int64(pos), Err: err})
		} else {
			records = append(records, rec)
		}

		pos += align8(int(recordLength))
	}

	return records, diags
}

func decodeOneRecord(raw []byte) (Record, error) {
	majorVersion := binary.LittleEndian.Uint16(raw[offMajorVersion:])
	if majorVersion != 2 {
		return Record{}, fmt.Errorf("unsupported USN record major version %d", majorVersion)
	}

	fileRefRaw := binary.LittleEndian.Uint64(raw[offFileReferenceNumber:])
	parentRefRaw := binary.LittleEndian.Uint64(raw[offParentFileReferenceNumber:])

	nameLength := int(binary.LittleEndian.Uint16(raw[offFileNameLength:]))
	nameOffset := int(binary.LittleEndian.Uint16(raw[offFileNameOffset:]))
	if nameOffset+nameLength > len(raw) {
		return Record{}, fmt.Errorf("usn record file_name runs past end of record")
	}

	return Record{
		Usn: int64(binary.LittleEndian.Uint64(raw[offUsn:])),
		FileReference: mft.FileReference{
			Inum:     fileRefRaw & 0x0000FFFFFFFFFFFF,
			Sequence: uint16(fileRefRaw >> 48),
		},
		ParentReference: mft.FileReference{
			Inum:     parentRefRaw & 0x0000FFFFFFFFFFFF,
			Sequence: uint16(parentRefRaw >> 48),
		},
		TimestampFiletime: binary.LittleEndian.Uint64(raw[offTimestamp:]),
		Reason:            Reason(binary.LittleEndian.Uint32(raw[offReason:])),
		SourceInfo:        binary.LittleEndian.Uint32(raw[offSourceInfo:]),
		SecurityID:        binary.LittleEndian.Uint32(raw[offSecurityID:]),
		FileAttributes:    binary.LittleEndian.Uint32(raw[offFileAttributes:]),
		FileName:          decodeUTF16(raw[nameOffset : nameOffset+nameLength]),
	}, nil
}

// skipSparsePadding advances past a run of zero bytes, returning the
// position of the next nonzero byte (8-byte aligned) or len(stream).
func skipSparsePadding(stream []byte, pos int) int {
	pos = align8(pos + 8)
	for pos+4 <= len(stream) && binary.LittleEndian.Uint32(stream[pos:]) == 0 {
		pos += 8
	}
	return pos
}

func align8(n int) int {
	return (n + 7) &^ 7
}
