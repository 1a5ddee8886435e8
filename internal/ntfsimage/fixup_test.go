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
	"errors"
	"testing"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFixedStructure builds a numSectors-sector structure with a correctly
// signed and restored update-sequence array: usaOffset is 0x08, right after
// the 4-byte magic and the USA offset/count fields, usaCount is
// numSectors+1, and each sector's
// trailing two bytes carry the signature with the real data stashed in
// the USA entries.
func buildFixedStructure(sectorSize int, numSectors int, signature [2]byte, realTail [][2]byte) []byte {
	usaOffset := 0x08
	usaCount := numSectors + 1
	buf := make([]byte, sectorSize*numSectors)
	binary.LittleEndian.PutUint16(buf[UsaOffsetOffset:], uint16(usaOffset))
	binary.LittleEndian.PutUint16(buf[UsaCountOffset:], uint16(usaCount))

	buf[usaOffset] = signature[0]
	buf[usaOffset+1] = signature[1]
	for i := 0; i < numSectors; i++ {
		entryOff := usaOffset + 2*(i+1)
		buf[entryOff] = realTail[i][0]
		buf[entryOff+1] = realTail[i][1]

		tailOff := i*sectorSize + sectorSize - 2
		buf[tailOff] = signature[0]
		buf[tailOff+1] = signature[1]
	}
	return buf
}

func TestApplyFixups_RestoresSectorTails(t *testing.T) {
	sig := [2]byte{0xAA, 0xBB}
	real := [][2]byte{{0x01, 0x02}, {0x03, 0x04}}
	raw := buildFixedStructure(512, 2, sig, real)

	out, err := ApplyFixups(raw, 512)

	require.NoError(t, err)
	assert.Equal(t, byte(0x01), out[510])
	assert.Equal(t, byte(0x02), out[511])
	assert.Equal(t, byte(0x03), out[1022])
	assert.Equal(t, byte(0x04), out[1023])
}

func TestApplyFixups_DoesNotMutateInput(t *testing.T) {
	sig := [2]byte{0xAA, 0xBB}
	real := [][2]byte{{0x01, 0x02}}
	raw := buildFixedStructure(512, 1, sig, real)
	original := append([]byte(nil), raw...)

	_, err := ApplyFixups(raw, 512)

	require.NoError(t, err)
	assert.Equal(t, original, raw)
}

func TestApplyFixups_SignatureMismatchIsAnError(t *testing.T) {
	sig := [2]byte{0xAA, 0xBB}
	real := [][2]byte{{0x01, 0x02}}
	raw := buildFixedStructure(512, 1, sig, real)
	raw[510] = 0xFF // corrupt the sector tail signature

	_, err := ApplyFixups(raw, 512)

	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrFixupMismatch))
}

func TestApplyFixups_ZeroUsaCountSkipsVerification(t *testing.T) {
	raw := make([]byte, 512)

	out, err := ApplyFixups(raw, 512)

	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestApplyFixups_SizeNotMultipleOfSectorIsAnError(t *testing.T) {
	raw := make([]byte, 513)

	_, err := ApplyFixups(raw, 512)

	assert.Error(t, err)
}
