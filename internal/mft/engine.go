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
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/NTFSparse/ntfs-parse/internal/lrucache"
	"github.com/NTFSparse/ntfs-parse/internal/ntfsimage"
	"github.com/NTFSparse/ntfs-parse/internal/workerpool"
)

// Engine holds a decoded, base-merged view of an entire Master File Table.
type Engine struct {
	reader   *ntfsimage.Reader
	geometry ntfsimage.Geometry

	entries map[uint64]MftEntry
	maxInum uint64

	mu          sync.Mutex
	extractCache *lrucache.Cache[extractKey, []byte]
}

type extractKey struct {
	inum          uint64
	streamOrdinal int
}

// NewEngine bootstraps an Engine: it reads MFT record 0, expands its $DATA
// runlist to recover the full $MFT file, decodes every record in it (fanned
// out across workers concurrent decodes), then merges extension records
// (base_reference != 0) into their base record. extractCacheCapacity bounds
// the number of distinct (inum, stream) ExtractData results memoized; zero
// means unbounded.
func NewEngine(r *ntfsimage.Reader, g ntfsimage.Geometry, workers uint32, extractCacheCapacity int) (*Engine, error) {
	if workers == 0 {
		workers = 1
	}

	record0Raw, err := r.Read(g.MftStartOffsetBytes, int64(g.MftRecordSize))
	if err != nil {
		return nil, fmt.Errorf("reading MFT record 0: %w", err)
	}
	record0, err := DecodeRecord(record0Raw, g.SectorSize, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding MFT record 0: %w", err)
	}

	dataAttrs := record0.DataAttributes()
	if len(dataAttrs) == 0 {
		return nil, fmt.Errorf("MFT record 0 has no $DATA attribute")
	}
	mftData, err := extractAttributeData(r, g, dataAttrs[0])
	if err != nil {
		return nil, fmt.Errorf("extracting $MFT contents: %w", err)
	}

	recordCount := len(mftData) / g.MftRecordSize
	if recordCount == 0 {
		return nil, fmt.Errorf("$MFT contents smaller than one record")
	}

	decoded := make([]*MftEntry, recordCount)
	decoded[0] = &record0

	pool, err := workerpool.NewStaticWorkerPool(workers)
	if err != nil {
		return nil, err
	}
	for i := 1; i < recordCount; i++ {
		inum := uint64(i)
		raw := mftData[i*g.MftRecordSize : (i+1)*g.MftRecordSize]
		pool.Go(func() error {
			entry, err := DecodeRecord(raw, g.SectorSize, inum)
			if err != nil {
				// A single corrupt/unused slot should not abort the whole
				// bootstrap; record it as not-in-use and move on.
				decoded[inum] = &MftEntry{Inum: inum, IsInUse: false, Attributes: map[AttributeType][]Attribute{}}
				return nil
			}
			decoded[inum] = &entry
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	entries := make(map[uint64]MftEntry, recordCount)
	for _, e := range decoded {
		if e != nil {
			entries[e.Inum] = *e
		}
	}
	mergeExtensionRecords(entries)

	return &Engine{
		reader:       r,
		geometry:     g,
		entries:      entries,
		maxInum:      uint64(recordCount - 1),
		extractCache: lrucache.New[extractKey, []byte](extractCacheCapacity),
	}, nil
}

// mergeExtensionRecords folds every record whose base_reference is nonzero
// into its base record's attribute map, then deletes the extension record
// from entries. Order among extension records sharing a base is the
// ascending inum order entries were decoded in.
func mergeExtensionRecords(entries map[uint64]MftEntry) {
	var extensionInums []uint64
	for inum, e := range entries {
		if e.BaseReference != 0 {
			extensionInums = append(extensionInums, inum)
		}
	}
	sort.Slice(extensionInums, func(i, j int) bool { return extensionInums[i] < extensionInums[j] })

	for _, inum := range extensionInums {
		ext := entries[inum]
		base, ok := entries[ext.BaseReference]
		if !ok {
			continue
		}
		for t, attrs := range ext.Attributes {
			base.Attributes[t] = append(base.Attributes[t], attrs...)
		}
		entries[ext.BaseReference] = base
		delete(entries, inum)
	}
}

// Entries returns the final, base-merged map[inum]MftEntry.
func (e *Engine) Entries() map[uint64]MftEntry {
	return e.entries
}

// Entry returns the decoded entry for inum, if present.
func (e *Engine) Entry(inum uint64) (MftEntry, bool) {
	entry, ok := e.entries[inum]
	return entry, ok
}

// MaxInum returns the highest inum the $MFT was decoded over -- the upper
// bound ParseRange's "all" token expands to.
func (e *Engine) MaxInum() uint64 {
	return e.maxInum
}

// ExtractData returns the fully assembled bytes of the streamOrdinal'th
// $DATA attribute (0 is the unnamed default stream) of inum, memoizing the
// result.
func (e *Engine) ExtractData(inum uint64, streamOrdinal int) ([]byte, error) {
	key := extractKey{inum: inum, streamOrdinal: streamOrdinal}

	e.mu.Lock()
	if cached, ok := e.extractCache.Get(key); ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	entry, ok := e.entries[inum]
	if !ok {
		return nil, fmt.Errorf("inum %d not found", inum)
	}
	streams := entry.DataAttributes()
	if streamOrdinal < 0 || streamOrdinal >= len(streams) {
		return nil, fmt.Errorf("inum %d has no $DATA stream %d", inum, streamOrdinal)
	}

	data, err := extractAttributeData(e.reader, e.geometry, streams[streamOrdinal])
	if err != nil {
		return nil, fmt.Errorf("extracting inum %d stream %d: %w", inum, streamOrdinal, err)
	}

	e.mu.Lock()
	e.extractCache.Put(key, data)
	e.mu.Unlock()
	return data, nil
}

func extractAttributeData(r *ntfsimage.Reader, g ntfsimage.Geometry, attr Attribute) ([]byte, error) {
	if attr.Form == Resident {
		return attr.ResidentData, nil
	}
	return ExtractData(attr.Runlist, g.BytesPerCluster, attr.RealSize, func(lcn, lengthClusters uint64) ([]byte, error) {
		offset := g.FilesystemOffsetBytes + int64(lcn)*int64(g.BytesPerCluster)
		length := int64(lengthClusters) * int64(g.BytesPerCluster)
		return r.Read(offset, length)
	})
}

// ParseInum parses a single decimal inum.
func ParseInum(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid inum %q: %w", s, err)
	}
	return v, nil
}

// ParseRange parses a comma-separated selection of inums: the literal
// keyword "all" (every entry up to maxInum), single decimal integers, and
// "a-b" inclusive ranges, any of which may repeat; the returned slice is
// deduplicated and sorted ascending.
func ParseRange(s string, maxInum uint64) ([]uint64, error) {
	s = strings.TrimSpace(s)
	if s == "all" {
		out := make([]uint64, maxInum+1)
		for i := range out {
			out[i] = uint64(i)
		}
		return out, nil
	}

	seen := make(map[uint64]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			loVal, err := ParseInum(lo)
			if err != nil {
				return nil, err
			}
			hiVal, err := ParseInum(hi)
			if err != nil {
				return nil, err
			}
			if hiVal < loVal {
				return nil, fmt.Errorf("invalid range %q: end before start", part)
			}
			for v := loVal; v <= hiVal; v++ {
				seen[v] = struct{}{}
			}
			continue
		}
		v, err := ParseInum(part)
		if err != nil {
			return nil, err
		}
		seen[v] = struct{}{}
	}

	out := make([]uint64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
