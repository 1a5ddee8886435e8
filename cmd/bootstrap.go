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

package cmd

import (
	"fmt"
	"os"

	"github.com/NTFSparse/ntfs-parse/cfg"
	"github.com/NTFSparse/ntfs-parse/internal/logger"
	"github.com/NTFSparse/ntfs-parse/internal/mft"
	"github.com/NTFSparse/ntfs-parse/internal/ntfsimage"
	"github.com/NTFSparse/ntfs-parse/internal/perf"
	"github.com/NTFSparse/ntfs-parse/internal/ratelimit"
)

// volume bundles everything a subcommand needs after bootstrapping: the
// opened reader (throttled per config), its decoded Geometry, and an
// optional performance Recorder.
type volume struct {
	file     *os.File          // the handle Close must release
	reader   *ntfsimage.Reader // the (possibly throttled) reader decoders use
	geometry ntfsimage.Geometry
	recorder *perf.Recorder
}

// Close releases the underlying file handle.
func (v *volume) Close() error {
	return v.file.Close()
}

// openVolume opens path, applies Correlate.ThrottleBytesPerSec if set, and
// decodes the boot sector at the offset resolved from c.Image.
func openVolume(path string, c *cfg.Config) (*volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("statting %s: %w", path, err)
	}

	throttled := ratelimit.NewThrottledReaderAt(f, c.Correlate.ThrottleBytesPerSec)
	tr := ntfsimage.NewReader(throttled, info.Size())

	offset := ntfsimage.Offset(c.Image.OffsetSectors, c.Image.OffsetBytes, c.Image.SectorSize)
	g, err := ntfsimage.DecodeBootSector(tr, offset)
	if err != nil {
		f.Close()
		return nil, err
	}
	logger.Infof("decoded geometry: sector_size=%d bytes_per_cluster=%d mft_record_size=%d mft_start_offset_bytes=%d",
		g.SectorSize, g.BytesPerCluster, g.MftRecordSize, g.MftStartOffsetBytes)

	var recorder *perf.Recorder
	if c.Perf.Enabled {
		recorder = perf.NewRecorder()
	}

	return &volume{file: f, reader: tr, geometry: g, recorder: recorder}, nil
}

// mftEngine bootstraps a mft.Engine over v using c's worker count.
func (v *volume) mftEngine(c *cfg.Config) (*mft.Engine, error) {
	return mft.NewEngine(v.reader, v.geometry, uint32(c.Correlate.WorkerCount), 1024)
}
