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

package logfile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildClientRecord assembles one lfsClientRecordType record: the LFS
// header, the client-data sub-header, and redo/undo payloads placed right
// after it.
func buildClientRecord(lsn uint64, transactionID uint32, redoOp, undoOp Opcode, redo, undo []byte) []byte {
	const subHeaderSize = lfsDataMinSize
	redoOff := subHeaderSize
	undoOff := redoOff + len(redo)
	clientDataLen := undoOff + len(undo)

	raw := make([]byte, lfsHeaderSize+clientDataLen)
	binary.LittleEndian.PutUint64(raw[lfsThisLsn:], lsn)
	binary.LittleEndian.PutUint32(raw[lfsClientDataLength:], uint32(clientDataLen))
	binary.LittleEndian.PutUint32(raw[lfsRecordType:], lfsClientRecordType)
	binary.LittleEndian.PutUint32(raw[lfsTransactionId:], transactionID)

	cd := raw[lfsHeaderSize:]
	binary.LittleEndian.PutUint16(cd[lfsDataRedoOp:], uint16(redoOp))
	binary.LittleEndian.PutUint16(cd[lfsDataUndoOp:], uint16(undoOp))
	binary.LittleEndian.PutUint16(cd[lfsDataRedoOff:], uint16(redoOff))
	binary.LittleEndian.PutUint16(cd[lfsDataRedoLen:], uint16(len(redo)))
	binary.LittleEndian.PutUint16(cd[lfsDataUndoOff:], uint16(undoOff))
	binary.LittleEndian.PutUint16(cd[lfsDataUndoLen:], uint16(len(undo)))
	copy(cd[redoOff:], redo)
	copy(cd[undoOff:], undo)

	return raw
}

func TestDecodeClientRecord_DecodesHeaderAndPayloads(t *testing.T) {
	redo := []byte{0xAA, 0xBB, 0xCC}
	undo := []byte{0x11}
	raw := buildClientRecord(500, 7, OpUpdateNonresidentValue, OpNoop, redo, undo)

	rec, consumed, err := decodeClientRecord(raw)

	require.NoError(t, err)
	assert.Equal(t, uint64(500), rec.Lsn)
	assert.Equal(t, uint32(7), rec.TransactionID)
	assert.Equal(t, OpUpdateNonresidentValue, rec.RedoOp)
	assert.Equal(t, redo, rec.RedoData)
	assert.Equal(t, undo, rec.UndoData)
	assert.Equal(t, align8(len(raw)), consumed)
}

func TestDecodeClientRecord_TruncatedHeaderIsAnError(t *testing.T) {
	_, _, err := decodeClientRecord(make([]byte, 4))

	assert.Error(t, err)
}

func TestDecodeClientRecord_DeclaredLengthPastStreamIsAnError(t *testing.T) {
	raw := make([]byte, lfsHeaderSize)
	binary.LittleEndian.PutUint32(raw[lfsClientDataLength:], 9999)

	_, _, err := decodeClientRecord(raw)

	assert.Error(t, err)
}

func TestDecodeClientRecord_NonClientRecordTypeSkipsSubHeader(t *testing.T) {
	raw := make([]byte, lfsHeaderSize)
	binary.LittleEndian.PutUint32(raw[lfsRecordType:], 2) // not lfsClientRecordType

	rec, consumed, err := decodeClientRecord(raw)

	require.NoError(t, err)
	assert.Equal(t, Opcode(0), rec.RedoOp)
	assert.Equal(t, align8(lfsHeaderSize), consumed)
}

func TestAlign8(t *testing.T) {
	assert.Equal(t, 0, align8(0))
	assert.Equal(t, 8, align8(1))
	assert.Equal(t, 8, align8(8))
	assert.Equal(t, 16, align8(9))
}
