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
	"fmt"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
)

// DecodeRunlist decodes a non-resident attribute's runlist starting at
// data[0], stopping at the zero header byte that terminates it. Each run
// header byte splits into a (length_field_bytes, offset_field_bytes)
// nibble pair; length is unsigned, the LCN offset is a signed two's
// complement delta added to a running absolute LCN. A run whose
// offset_field_bytes is zero is sparse and carries no backing LCN.
func DecodeRunlist(data []byte) (Runlist, error) {
	var runs Runlist
	var absoluteLcn int64
	pos := 0

	for pos < len(data) {
		header := data[pos]
		if header == 0 {
			break
		}
		lengthBytes := int(header & 0x0F)
		offsetBytes := int(header>>4) & 0x0F
		pos++

		if pos+lengthBytes+offsetBytes > len(data) {
			return nil, fmt.Errorf("%w: run header at %d overruns runlist", diag.ErrRunlistOverflow, pos-1)
		}

		length := decodeUnsigned(data[pos : pos+lengthBytes])
		pos += lengthBytes

		if offsetBytes == 0 {
			runs = append(runs, Run{Sparse: true, LengthClusters: length})
			continue
		}

		delta := decodeSigned(data[pos : pos+offsetBytes])
		pos += offsetBytes

		absoluteLcn += delta
		if absoluteLcn < 0 {
			return nil, fmt.Errorf("%w: negative absolute LCN", diag.ErrRunlistOverflow)
		}
		runs = append(runs, Run{Sparse: false, LengthClusters: length, Lcn: uint64(absoluteLcn)})
	}

	return runs, nil
}

func decodeUnsigned(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func decodeSigned(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	v := decodeUnsigned(b)
	// Sign-extend from the most significant bit of the last (highest-order)
	// byte present.
	if b[len(b)-1]&0x80 != 0 {
		var mask uint64 = ^uint64(0)
		mask <<= uint(8 * len(b))
		v |= mask
	}
	return int64(v)
}

// ExtractData concatenates the cluster ranges described by runs in VCN
// order via read, a function retrieving bytesPerCluster*length bytes for an
// Allocated run (and never called for a Sparse run); sparse ranges yield
// zero bytes; the result is truncated to realSize bytes.
func ExtractData(runs Runlist, bytesPerCluster int, realSize uint64, read func(lcn, lengthClusters uint64) ([]byte, error)) ([]byte, error) {
	out := make([]byte, 0, realSize)
	for _, run := range runs {
		length := int64(run.LengthClusters) * int64(bytesPerCluster)
		if run.Sparse {
			out = append(out, make([]byte, length)...)
			continue
		}
		chunk, err := read(run.Lcn, run.LengthClusters)
		if err != nil {
			return nil, fmt.Errorf("extracting data: %w", err)
		}
		out = append(out, chunk...)
	}
	if uint64(len(out)) > realSize {
		out = out[:realSize]
	}
	return out, nil
}
