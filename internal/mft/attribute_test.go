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
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildResidentAttribute assembles one resident attribute record: the
// common header followed by contentLength bytes of payload starting right
// after it.
func buildResidentAttribute(typeCode uint32, payload []byte) []byte {
	const headerSize = 0x18
	recordLength := headerSize + len(payload)
	// Pad record_length to a multiple of 8, as real attributes are.
	for recordLength%8 != 0 {
		recordLength++
	}
	raw := make([]byte, recordLength)
	binary.LittleEndian.PutUint32(raw[attrHdrTypeCode:], typeCode)
	binary.LittleEndian.PutUint32(raw[attrHdrRecordLength:], uint32(recordLength))
	raw[attrHdrNonResident] = 0
	binary.LittleEndian.PutUint16(raw[attrHdrAttributeID:], 0)
	binary.LittleEndian.PutUint32(raw[attrResContentLength:], uint32(len(payload)))
	binary.LittleEndian.PutUint16(raw[attrResContentOffset:], uint16(headerSize))
	copy(raw[headerSize:], payload)
	return raw
}

func buildFileNamePayload(parentInum uint64, parentSeq uint16, name string) []byte {
	u16 := utf16.Encode([]rune(name))
	payload := make([]byte, 66+len(u16)*2)
	parentRef := (parentInum & 0x0000FFFFFFFFFFFF) | (uint64(parentSeq) << 48)
	binary.LittleEndian.PutUint64(payload[0:], parentRef)
	payload[64] = byte(len(u16))
	payload[65] = byte(NamespaceWin32)
	for i, c := range u16 {
		binary.LittleEndian.PutUint16(payload[66+i*2:], c)
	}
	return payload
}

func TestDecodeAttributes_StopsAtEndOfListTerminator(t *testing.T) {
	body := append(buildResidentAttribute(uint32(AttrStandardInformation), make([]byte, 48)),
		[]byte{0xFF, 0xFF, 0xFF, 0xFF}...)

	attrs, err := DecodeAttributes(body)

	require.NoError(t, err)
	require.Len(t, attrs, 1)
	assert.Equal(t, AttrStandardInformation, attrs[0].Type)
}

func TestDecodeAttributes_DecodesFileName(t *testing.T) {
	payload := buildFileNamePayload(5, 3, "hello.txt")
	body := buildResidentAttribute(uint32(AttrFileName), payload)

	attrs, err := DecodeAttributes(body)

	require.NoError(t, err)
	require.Len(t, attrs, 1)
	require.NotNil(t, attrs[0].FileName)
	assert.Equal(t, "hello.txt", attrs[0].FileName.Name)
	assert.Equal(t, uint64(5), attrs[0].FileName.Parent.Inum)
	assert.Equal(t, uint16(3), attrs[0].FileName.Parent.Sequence)
	assert.Equal(t, NamespaceWin32, attrs[0].FileName.Namespace)
}

func TestDecodeAttributes_InvalidRecordLengthIsAnError(t *testing.T) {
	body := make([]byte, 16)
	binary.LittleEndian.PutUint32(body[attrHdrTypeCode:], uint32(AttrData))
	binary.LittleEndian.PutUint32(body[attrHdrRecordLength:], 9999) // runs past body

	_, err := DecodeAttributes(body)

	require.Error(t, err)
}

func TestDecodeAttributes_NonResidentDecodesRunlist(t *testing.T) {
	const headerSize = 0x40
	runlist := []byte{0x11, 0x05, 0x0A, 0x00} // one run: length=5, lcn=10
	recordLength := headerSize + len(runlist)
	raw := make([]byte, recordLength)
	binary.LittleEndian.PutUint32(raw[attrHdrTypeCode:], uint32(AttrData))
	binary.LittleEndian.PutUint32(raw[attrHdrRecordLength:], uint32(recordLength))
	raw[attrHdrNonResident] = 1
	binary.LittleEndian.PutUint64(raw[attrNRAllocatedSize:], 5*4096)
	binary.LittleEndian.PutUint64(raw[attrNRRealSize:], 20000)
	binary.LittleEndian.PutUint64(raw[attrNRInitSize:], 20000)
	binary.LittleEndian.PutUint16(raw[attrNRRunlistOffset:], headerSize)
	copy(raw[headerSize:], runlist)

	attrs, err := DecodeAttributes(raw)

	require.NoError(t, err)
	require.Len(t, attrs, 1)
	assert.Equal(t, NonResident, attrs[0].Form)
	require.Len(t, attrs[0].Runlist, 1)
	assert.Equal(t, uint64(10), attrs[0].Runlist[0].Lcn)
	assert.Equal(t, uint64(20000), attrs[0].RealSize)
}
