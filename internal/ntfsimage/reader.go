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

// Package ntfsimage provides random-access, bounds-checked reads over a raw
// disk image (or an extracted artifact file) and decodes the NTFS boot
// sector that locates the MFT within it.
package ntfsimage

import (
	"io"
	"os"

	"github.com/NTFSparse/ntfs-parse/internal/diag"
)

// Reader is a random-access, read-only view over an image. All integer
// decoders built on top of it are little-endian unless noted.
type Reader struct {
	ra   io.ReaderAt
	size int64
	// closer is non-nil when Reader owns the underlying *os.File and must
	// release it on Close.
	closer io.Closer
}

// Open opens path read-only and returns a Reader bounded by the file's
// current size. The returned Reader's Close method releases the file
// handle; callers must always call it, including on error paths that
// abort after Open succeeds.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Reader{ra: f, size: info.Size(), closer: f}, nil
}

// NewReader wraps an already-open io.ReaderAt of the given size. The
// returned Reader's Close is a no-op; the caller retains ownership of ra.
func NewReader(ra io.ReaderAt, size int64) *Reader {
	return &Reader{ra: ra, size: size}
}

// Size returns the image size in bytes.
func (r *Reader) Size() int64 { return r.size }

// Read returns length bytes starting at offset, failing with
// diag.ErrReadOutOfRange if the extent runs past the end of the image.
func (r *Reader) Read(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > r.size {
		return nil, diag.ReadOutOfRange(offset, length, r.size)
	}
	buf := make([]byte, length)
	n, err := r.ra.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if int64(n) != length {
		return nil, diag.ReadOutOfRange(offset, length, r.size)
	}
	return buf, nil
}

// Close releases the underlying file handle, if Reader owns one.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
