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
	"fmt"
)

const (
	lfsHeaderSize = 0x2C

	lfsThisLsn           = 0x00
	lfsClientPreviousLsn = 0x08
	lfsClientUndoNextLsn = 0x10
	lfsClientDataLength  = 0x18
	lfsClientSeqNumber   = 0x1C
	lfsClientIndex       = 0x1E
	lfsRecordType        = 0x20
	lfsTransactionId     = 0x24
	lfsFlags             = 0x28

	lfsClientRecordType = 1

	// Client-data sub-header, relative to the first byte after lfsHeaderSize.
	lfsDataRedoOp    = 0x00
	lfsDataUndoOp    = 0x02
	lfsDataRedoOff   = 0x04
	lfsDataRedoLen   = 0x06
	lfsDataUndoOff   = 0x08
	lfsDataUndoLen   = 0x0A
	lfsDataTargetAttr = 0x0C
	lfsDataMinSize   = 0x0E
)

// ClientID identifies the log client (always the NTFS client, "NTFS") that
// wrote a record plus the restart-area sequence it was written under.
type ClientID struct {
	SeqNumber   uint16
	ClientIndex uint16
}

// Target names the attribute a client record's redo/undo data applies to.
// AttributeTypeCode is the truncated attribute type hint embedded in the
// client record; it is advisory, not authoritative (the MFT engine is the
// source of truth for attribute typing).
type Target struct {
	AttributeTypeCode uint16
}

// ClientRecord is one decoded LFS client log record.
type ClientRecord struct {
	Lsn           uint64
	PreviousLsn   uint64
	UndoNextLsn   uint64
	ClientID      ClientID
	RecordType    uint32
	TransactionID uint32
	RedoOp        Opcode
	UndoOp        Opcode
	Target        Target
	RedoData      []byte
	UndoData      []byte
}

// decodeClientRecord decodes one LFS record (header plus, for
// lfsClientRecordType records, its client-data sub-header) starting at
// stream[0]. It returns the record, the number of bytes consumed (8-byte
// aligned), and an error if the header is malformed or declares a length
// that runs past the end of stream.
func decodeClientRecord(stream []byte) (ClientRecord, int, error) {
	if len(stream) < lfsHeaderSize {
		return ClientRecord{}, 0, fmt.Errorf("truncated log record header: %d bytes remain", len(stream))
	}

	dataLength := binary.LittleEndian.Uint32(stream[lfsClientDataLength:])
	total := lfsHeaderSize + int(dataLength)
	if total > len(stream) {
		return ClientRecord{}, 0, fmt.Errorf("log record declares %d bytes of client data, only %d available", dataLength, len(stream)-lfsHeaderSize)
	}

	rec := ClientRecord{
		Lsn:         binary.LittleEndian.Uint64(stream[lfsThisLsn:]),
		PreviousLsn: binary.LittleEndian.Uint64(stream[lfsClientPreviousLsn:]),
		UndoNextLsn: binary.LittleEndian.Uint64(stream[lfsClientUndoNextLsn:]),
		ClientID: ClientID{
			SeqNumber:   binary.LittleEndian.Uint16(stream[lfsClientSeqNumber:]),
			ClientIndex: binary.LittleEndian.Uint16(stream[lfsClientIndex:]),
		},
		RecordType:    binary.LittleEndian.Uint32(stream[lfsRecordType:]),
		TransactionID: binary.LittleEndian.Uint32(stream[lfsTransactionId:]),
	}

	clientData := stream[lfsHeaderSize:total]
	if rec.RecordType == lfsClientRecordType && len(clientData) >= lfsDataMinSize {
		rec.RedoOp = Opcode(binary.LittleEndian.Uint16(clientData[lfsDataRedoOp:]))
		rec.UndoOp = Opcode(binary.LittleEndian.Uint16(clientData[lfsDataUndoOp:]))
		rec.Target = Target{AttributeTypeCode: binary.LittleEndian.Uint16(clientData[lfsDataTargetAttr:])}

		redoOff := int(binary.LittleEndian.Uint16(clientData[lfsDataRedoOff:]))
		redoLen := int(binary.LittleEndian.Uint16(clientData[lfsDataRedoLen:]))
		undoOff := int(binary.LittleEndian.Uint16(clientData[lfsDataUndoOff:]))
		undoLen := int(binary.LittleEndian.Uint16(clientData[lfsDataUndoLen:]))

		if redoOff >= 0 && redoOff+redoLen <= len(clientData) {
			rec.RedoData = clientData[redoOff : redoOff+redoLen]
		}
		if undoOff >= 0 && undoOff+undoLen <= len(clientData) {
			rec.UndoData = clientData[undoOff : undoOff+undoLen]
		}
	}

	consumed := align8(total)
	return rec, consumed, nil
}

func align8(n int) int {
	return (n + 7) &^ 7
}
