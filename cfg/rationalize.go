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

package cfg

import "runtime"

// Rationalize updates the config fields based on the values of other
// fields, mirroring the teacher's cfg.Rationalize pass that runs after flag
// binding and before validation.
func Rationalize(c *Config) error {
	if c.Image.SectorSize == 0 {
		c.Image.SectorSize = DefaultSectorSize
	}
	if c.Correlate.WorkerCount == 0 {
		c.Correlate.WorkerCount = DefaultWorkerCount()
	}
	if c.Logging.Severity == "" {
		c.Logging.Severity = INFO
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	return nil
}

// DefaultWorkerCount mirrors the teacher's DefaultMaxParallelDownloads
// heuristic: enough workers to keep a decode pipeline busy without
// oversubscribing small machines.
func DefaultWorkerCount() int {
	return max(4, runtime.NumCPU())
}
