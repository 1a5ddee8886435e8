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
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildUsnRecord(usn int64, inum uint64, seq uint16, reason Reason, name string) []byte {
	u16 := utf16.Encode([]rune(name))
	nameBytes := len(u16) * 2
	recordLength := v2HeaderSize + nameBytes
	for recordLength%8 != 0 {
		recordLength++
	}
	raw := make([]byte, recordLength)

	binary.LittleEndian.PutUint32(raw[offRecordLength:], uint32(recordLength))
	binary.LittleEndian.PutUint16(raw[offMajorVersion:], 2)
	binary.LittleEndian.PutUint16(raw[offMinorVersion:], 0)
	fileRef := (inum & 0x0000FFFFFFFFFFFF) | (uint64(seq) << 48)
	binary.LittleEndian.PutUint64(raw[offFileReferenceNumber:], fileRef)
	binary.LittleEndian.PutUint64(raw[offUsn:], uint64(usn))
	binary.LittleEndian.PutUint32(raw[offReason:], uint32(reason))
	binary.LittleEndian.PutUint16(raw[offFileNameLength:], uint16(nameBytes))
	binary.LittleEndian.PutUint16(raw[offFileNameOffset:], v2HeaderSize)
	for i, c := range u16 {
		binary.LittleEndian.PutUint16(raw[v2HeaderSize+i*2:], c)
	}
	return raw
}

func TestDecodeRecords_DecodesOneRecord(t *testing.T) {
	raw := buildUsnRecord(42, 7, 3, ReasonFileCreate, "foo.txt")

	records, diags := DecodeRecords(raw)

	require.Empty(t, diags)
	require.Len(t, records, 1)
	assert.Equal(t, int64(42), records[0].Usn)
	assert.Equal(t, uint64(7), records[0].FileReference.Inum)
	assert.Equal(t, uint16(3), records[0].FileReference.Sequence)
	assert.Equal(t, "foo.txt", records[0].FileName)
	assert.Equal(t, ReasonFileCreate, records[0].Reason)
}

func TestDecodeRecords_SkipsSparseHead(t *testing.T) {
	rec := buildUsnRecord(1, 1, 1, ReasonFileCreate, "a")
	stream := append(make([]byte, 4096), rec...)

	records, diags := DecodeRecords(stream)

	require.Empty(t, diags)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].Usn)
}

func TestDecodeRecords_SequentialRecords(t *testing.T) {
	rec1 := buildUsnRecord(1, 1, 1, ReasonFileCreate, "a")
	rec2 := buildUsnRecord(2, 2, 1, ReasonFileDelete, "b")
	stream := append(rec1, rec2...)

	records, diags := DecodeRecords(stream)

	require.Empty(t, diags)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].Usn)
	assert.Equal(t, int64(2), records[1].Usn)
}

func TestDecodeRecords_TruncatedRecordLengthYieldsDiagnostic(t *testing.T) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint32(raw[0:], 9999)

	records, diags := DecodeRecords(raw)

	assert.Empty(t, records)
	require.Len(t, diags, 1)
}

func TestReason_SymbolsJoinsFlags(t *testing.T) {
	r := ReasonFileCreate | ReasonClose

	assert.Equal(t, "FILE_CREATE|CLOSE", r.Symbols())
}

func TestReason_SymbolsNoneWhenEmpty(t *testing.T) {
	assert.Equal(t, "NONE", Reason(0).Symbols())
}

func TestSkipSparsePadding_AdvancesPastZeroRun(t *testing.T) {
	stream := make([]byte, 64)
	binary.LittleEndian.PutUint32(stream[32:], 7) // first nonzero length, 8-aligned

	got := skipSparsePadding(stream, 0)

	assert.Equal(t, 32, got)
}
