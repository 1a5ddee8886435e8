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
	"fmt"
	"path/filepath"
	"sort"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
	"github.com/NTFSparse/ntfs-parse/internal/perf"
	"github.com/NTFSparse/ntfs-parse/internal/workerpool"
)

// restartPageCount is the number of leading pages reserved for the restart
// area (two copies of the restart page) and skipped before RCRD scanning.
const restartPageCount = 2

// Result is the outcome of parsing a $LogFile stream: every transaction
// assembled from the pages that decoded cleanly, plus diagnostics for the
// ones that did not.
type Result struct {
	Transactions []Transaction
	Diagnostics  []diag.Diagnostic
}

// Options controls how Parse recovers from per-page failures.
type Options struct {
	SectorSize      int
	Workers         uint32
	ErrorPageDumpDir string // empty disables dumping
	Recorder        *perf.Recorder
}

// Parse decodes data (the full $LogFile $DATA stream contents) into
// Transactions. Page fixup+header decode is fanned out across Options.
// Workers; reassembly and transaction grouping are single-threaded, since
// both depend on global LSN ordering.
func Parse(data []byte, opts Options) (Result, error) {
	if opts.Workers == 0 {
		opts.Workers = 1
	}

	pageCount := len(data) / PageSize
	if pageCount <= restartPageCount {
		return Result{}, fmt.Errorf("logfile: stream has only %d pages, no RCRD pages present", pageCount)
	}

	rcrdCount := pageCount - restartPageCount
	decoded := make([]*Page, rcrdCount)
	collector := diag.NewCollector()

	pool, err := workerpool.NewStaticWorkerPool(opts.Workers)
	if err != nil {
		return Result{}, err
	}
	for i := 0; i < rcrdCount; i++ {
		idx := i
		streamOffset := int64((restartPageCount + idx) * PageSize)
		raw := data[streamOffset : streamOffset+PageSize]
		pool.Go(func() error {
			stop := perfStopwatch(opts.Recorder, "logfile_page_decode")
			defer stop()

			page, err := DecodePage(raw, opts.SectorSize, streamOffset)
			if err != nil {
				collector.Add("logfile", streamOffset, err)
				if opts.Recorder != nil {
					opts.Recorder.IncCounter("logfile_pages_dumped")
				}
				dumpPage(opts.ErrorPageDumpDir, streamOffset, raw)
				return nil
			}
			decoded[idx] = &page
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return Result{}, err
	}

	var pages []Page
	for _, p := range decoded {
		if p != nil {
			pages = append(pages, *p)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Header.PageLsn < pages[j].Header.PageLsn })

	records, recordDiags := walkClientRecords(pages)
	for _, d := range recordDiags {
		collector.Add(d.Artifact, d.Offset, d.Err)
	}

	transactions, txnDiags := AssembleTransactions(records)
	for _, d := range txnDiags {
		collector.Add(d.Artifact, d.Offset, d.Err)
	}

	return Result{
		Transactions: transactions,
		Diagnostics:  collector.Items(),
	}, nil
}

// walkClientRecords linearizes pages' client-record content -- the region
// [firstRecordOffset, Header.NextRecordOffset) of each page's Data, in LSN
// order -- and decodes client records sequentially off the resulting
// stream, so a record whose ClientDataLength runs past its starting page's
// boundary is transparently completed by the next page's bytes.
// NextRecordOffset is the page's free-space pointer (where content ends),
// not where the walk starts; content always starts at firstRecordOffset.
func walkClientRecords(pages []Page) ([]ClientRecord, []diag.Diagnostic) {
	var stream []byte
	for _, p := range pages {
		end := int(p.Header.NextRecordOffset)
		if end > len(p.Data) {
			end = len(p.Data)
		}
		if end <= firstRecordOffset {
			continue
		}
		stream = append(stream, p.Data[firstRecordOffset:end]...)
	}

	var records []ClientRecord
	var diags []diag.Diagnostic
	pos := 0
	for pos < len(stream) {
		rec, consumed, err := decodeClientRecord(stream[pos:])
		if err != nil {
			diags = append(diags, diag.Diagnostic{Artifact: "logfile", Offset: int64(pos), Err: fmt.Errorf("%w: %v", diag.ErrLogPageIncomplete, err)})
			break
		}
		if rec.RecordType == lfsClientRecordType {
			records = append(records, rec)
		}
		if consumed <= 0 {
			break
		}
		pos += consumed
	}
	return records, diags
}

func dumpPage(dir string, streamOffset int64, raw []byte) {
	if dir == "" {
		return
	}
	if err := diag.EnsureDir(dir); err != nil {
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("logfile-page-%d.bin", streamOffset))
	_ = diag.WriteAtomic(path, raw, 0o644)
}

func perfStopwatch(r *perf.Recorder, stage string) func() {
	if r == nil {
		return func() {}
	}
	return r.Stopwatch(stage)
}
