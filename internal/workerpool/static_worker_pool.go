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

// Package workerpool bounds the fan-out used to decode independent MFT
// records and independent $LogFile pages in parallel. It never spans an
// ordering-sensitive pass (extension-record merge, transaction assembly,
// correlation) -- only the per-item decode step within those passes.
package workerpool

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// StaticWorkerPool runs jobs with bounded concurrency and surfaces the
// first error any job returns, without losing results already produced by
// jobs that were in flight when the error occurred.
type StaticWorkerPool struct {
	workers int
	group   *errgroup.Group
}

// NewStaticWorkerPool returns a pool that runs at most workers jobs
// concurrently. workers must be at least 1.
func NewStaticWorkerPool(workers uint32) (*StaticWorkerPool, error) {
	if workers == 0 {
		return nil, fmt.Errorf("workerpool: workers must be at least 1")
	}
	g := new(errgroup.Group)
	g.SetLimit(int(workers))
	return &StaticWorkerPool{workers: int(workers), group: g}, nil
}

// Go schedules fn to run, blocking until a worker slot is free.
func (p *StaticWorkerPool) Go(fn func() error) {
	p.group.Go(fn)
}

// Wait blocks until every scheduled job has returned, and returns the first
// non-nil error any of them produced (if any).
func (p *StaticWorkerPool) Wait() error {
	return p.group.Wait()
}

// Stop is a no-op retained for symmetry with callers that defer pool
// cleanup immediately after construction; StaticWorkerPool has no
// background goroutines outside of the jobs it was given.
func (p *StaticWorkerPool) Stop() {}
