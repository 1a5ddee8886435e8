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

package diag

import (
	"fmt"
	"sync"
)

// Diagnostic is a single recoverable failure: the artifact it occurred in
// (e.g. "mft", "logfile", "usnjrnl"), the byte offset it was found at, and
// the underlying error.
type Diagnostic struct {
	Artifact string
	Offset   int64
	Err      error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: offset=%d: %v", d.Artifact, d.Offset, d.Err)
}

// Collector accumulates Diagnostics across a parse pass without aborting it.
// Safe for concurrent use so it can be shared across a workerpool fan-out.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a recoverable diagnostic.
func (c *Collector) Add(artifact string, offset int64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, Diagnostic{Artifact: artifact, Offset: offset, Err: err})
}

// Items returns a snapshot of all diagnostics recorded so far, in the order
// they were added.
func (c *Collector) Items() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports how many diagnostics have been recorded.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
