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

import "fmt"

// Opcode is an LFS redo/undo operation code. Unrecognized values are kept
// rather than rejected: a forensic parser must never lose a transaction
// because one of its opcodes postdates the tool.
type Opcode uint16

const (
	OpNoop                       Opcode = 0x00
	OpCompensationlogRecord      Opcode = 0x01
	OpInitializeFileRecordSegment Opcode = 0x02
	OpDeallocateFileRecordSegment Opcode = 0x03
	OpWriteEndOfFileRecordSegment Opcode = 0x04
	OpCreateAttribute            Opcode = 0x05
	OpDeleteAttribute            Opcode = 0x06
	OpUpdateResidentValue        Opcode = 0x07
	OpUpdateNonresidentValue     Opcode = 0x08
	OpUpdateMappingPairs         Opcode = 0x09
	OpSetNewAttributeSizes       Opcode = 0x0A
	OpAddIndexEntryRoot          Opcode = 0x0B
	OpDeleteIndexEntryRoot       Opcode = 0x0C
	OpAddIndexEntryAllocation    Opcode = 0x0D
	OpDeleteIndexEntryAllocation Opcode = 0x0E
	OpSetIndexEntryVcnAllocation Opcode = 0x11
	OpUpdateFileNameRoot         Opcode = 0x12
	OpUpdateFileNameAllocation   Opcode = 0x13
	OpSetBitsInNonresidentBitMap Opcode = 0x14
	OpClearBitsInNonresidentBitMap Opcode = 0x15
	OpUpdateRecordDataRoot       Opcode = 0x18
	OpUpdateRecordDataAllocation Opcode = 0x19
)

var opcodeNames = map[Opcode]string{
	OpNoop:                         "Noop",
	OpCompensationlogRecord:        "CompensationlogRecord",
	OpInitializeFileRecordSegment:  "InitializeFileRecordSegment",
	OpDeallocateFileRecordSegment:  "DeallocateFileRecordSegment",
	OpWriteEndOfFileRecordSegment:  "WriteEndOfFileRecordSegment",
	OpCreateAttribute:              "CreateAttribute",
	OpDeleteAttribute:              "DeleteAttribute",
	OpUpdateResidentValue:          "UpdateResidentValue",
	OpUpdateNonresidentValue:       "UpdateNonresidentValue",
	OpUpdateMappingPairs:           "UpdateMappingPairs",
	OpSetNewAttributeSizes:         "SetNewAttributeSizes",
	OpAddIndexEntryRoot:            "AddIndexEntryRoot",
	OpDeleteIndexEntryRoot:         "DeleteIndexEntryRoot",
	OpAddIndexEntryAllocation:      "AddIndexEntryAllocation",
	OpDeleteIndexEntryAllocation:   "DeleteIndexEntryAllocation",
	OpSetIndexEntryVcnAllocation:   "SetIndexEntryVcnAllocation",
	OpUpdateFileNameRoot:           "UpdateFileNameRoot",
	OpUpdateFileNameAllocation:     "UpdateFileNameAllocation",
	OpSetBitsInNonresidentBitMap:   "SetBitsInNonresidentBitMap",
	OpClearBitsInNonresidentBitMap: "ClearBitsInNonresidentBitMap",
	OpUpdateRecordDataRoot:         "UpdateRecordDataRoot",
	OpUpdateRecordDataAllocation:   "UpdateRecordDataAllocation",
}

// String returns the opcode's mnemonic, or "Unknown(0xNNNN)" for a value
// this tool does not recognize.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%04x)", uint16(o))
}

// IsNonresidentValueUpdate reports whether o is one of the
// UpdateNonresidentValue-family opcodes that can carry an embedded
// $UsnJrnl $J record in its redo payload.
func (o Opcode) IsNonresidentValueUpdate() bool {
	return o == OpUpdateNonresidentValue
}
