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

// Package logfile decodes the $LogFile data stream: RCRD pages, the client
// records packed into them (possibly spanning page boundaries), and the
// grouping of those records into transactions ordered by LSN.
package logfile

import (
	"encoding/binary"
	"fmt"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
	"github.com/NTFSparse/ntfs-parse/internal/ntfsimage"
)

// PageSize is the fixed size of every $LogFile page this tool understands.
// The first two pages of the stream are the restart area and are skipped.
const PageSize = 4096

var pageSignature = [4]byte{'R', 'C', 'R', 'D'}

const (
	pageHdrPageLsn           = 0x08
	pageHdrFlags             = 0x10
	pageHdrPageCount         = 0x14
	pageHdrPagePosition      = 0x16
	pageHdrNextRecordOffset  = 0x18
	pageHdrLastEndLsn        = 0x1C
)

// PageHeader is the fixed portion of an RCRD page, after fixups.
type PageHeader struct {
	PageLsn          uint64
	Flags            uint32
	PageCount        uint16
	PagePosition     uint16
	NextRecordOffset uint16
	LastEndLsn       uint64
}

// Page is one decoded, fixed-up $LogFile page.
type Page struct {
	Header     PageHeader
	StreamByteOffset int64 // offset of this page within the $LogFile $DATA stream
	Data       []byte      // the full PageSize bytes, post-fixup
}

// DecodePage applies fixups to raw (exactly PageSize bytes) and decodes its
// header. streamByteOffset is stored in Page.StreamByteOffset and quoted in
// error messages.
func DecodePage(raw []byte, sectorSize int, streamByteOffset int64) (Page, error) {
	if len(raw) != PageSize {
		return Page{}, fmt.Errorf("logfile page at %d: want %d bytes, got %d", streamByteOffset, PageSize, len(raw))
	}
	buf, err := ntfsimage.ApplyFixups(raw, sectorSize)
	if err != nil {
		return Page{}, fmt.Errorf("%w: page at %d: %v", diag.ErrLogPageIncomplete, streamByteOffset, err)
	}
	if [4]byte(buf[0:4]) != pageSignature {
		return Page{}, fmt.Errorf("%w: page at %d", diag.ErrBadSignature, streamByteOffset)
	}

	h := PageHeader{
		PageLsn:          binary.LittleEndian.Uint64(buf[pageHdrPageLsn:]),
		Flags:            binary.LittleEndian.Uint32(buf[pageHdrFlags:]),
		PageCount:        binary.LittleEndian.Uint16(buf[pageHdrPageCount:]),
		PagePosition:     binary.LittleEndian.Uint16(buf[pageHdrPagePosition:]),
		NextRecordOffset: binary.LittleEndian.Uint16(buf[pageHdrNextRecordOffset:]),
		LastEndLsn:       binary.LittleEndian.Uint64(buf[pageHdrLastEndLsn:]),
	}
	if int(h.NextRecordOffset) >= PageSize || int(h.NextRecordOffset) < pageHeaderMinSize {
		return Page{}, fmt.Errorf("%w: page at %d has implausible next_record_offset %d", diag.ErrLogPageIncomplete, streamByteOffset, h.NextRecordOffset)
	}

	return Page{Header: h, StreamByteOffset: streamByteOffset, Data: buf}, nil
}

const pageHeaderMinSize = 0x28

// firstRecordOffset is the fixed byte offset into a decoded page's Data
// where the region of packed client records begins -- right after the
// fixed header and update-sequence array. It is distinct from
// Header.NextRecordOffset, which is the free-space pointer marking where
// that region ends; walkClientRecords decodes [firstRecordOffset,
// NextRecordOffset) per page, not from NextRecordOffset onward.
const firstRecordOffset = pageHeaderMinSize
