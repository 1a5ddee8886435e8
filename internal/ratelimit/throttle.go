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

// Package ratelimit bounds the byte reader's throughput when scanning very
// large images in batch mode, so a forensic run doesn't starve other
// processes reading the same device.
package ratelimit

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

// ChooseLimiterCapacity picks a token-bucket burst size for a limiter
// running at rateHz, sized so a caller requesting up to maxCapacity tokens
// at once always has somewhere to put them.
func ChooseLimiterCapacity(rateHz float64, maxCapacity int) (int, error) {
	if rateHz <= 0 {
		return 0, fmt.Errorf("illegal rate: %f", rateHz)
	}
	if maxCapacity <= 0 {
		return 0, fmt.Errorf("illegal max capacity: %d", maxCapacity)
	}
	// Allow at least one second's worth of tokens to burst, capped by the
	// caller-supplied ceiling.
	capacity := int(rateHz)
	if capacity < 1 {
		capacity = 1
	}
	if capacity > maxCapacity {
		capacity = maxCapacity
	}
	return capacity, nil
}

// ThrottledReaderAt wraps an io.ReaderAt, bounding bytes/sec via a token
// bucket. A zero-value bytesPerSec disables throttling (NewThrottledReaderAt
// returns the underlying reader unwrapped in that case).
type ThrottledReaderAt struct {
	underlying io.ReaderAt
	limiter    *rate.Limiter
}

// NewThrottledReaderAt returns r wrapped so that reads are limited to
// bytesPerSec bytes/sec of sustained throughput. If bytesPerSec is 0, r is
// returned unwrapped.
func NewThrottledReaderAt(r io.ReaderAt, bytesPerSec int) io.ReaderAt {
	if bytesPerSec <= 0 {
		return r
	}
	burst, err := ChooseLimiterCapacity(float64(bytesPerSec), bytesPerSec)
	if err != nil {
		burst = bytesPerSec
	}
	return &ThrottledReaderAt{
		underlying: r,
		limiter:    rate.NewLimiter(rate.Limit(bytesPerSec), burst),
	}
}

// ReadAt implements io.ReaderAt, waiting on the token bucket for len(p)
// bytes before delegating to the underlying reader.
func (t *ThrottledReaderAt) ReadAt(p []byte, off int64) (int, error) {
	for remaining := len(p); remaining > 0; {
		n := clampBurst(remaining, t.limiter.Burst())
		if err := t.limiter.WaitN(context.Background(), n); err != nil {
			return 0, fmt.Errorf("ratelimit: waiting for tokens: %w", err)
		}
		remaining -= n
	}
	return t.underlying.ReadAt(p, off)
}

func clampBurst(n, burst int) int {
	if n > burst {
		return burst
	}
	if n < 1 {
		return 1
	}
	return n
}
