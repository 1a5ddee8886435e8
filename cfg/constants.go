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

const (
	// Logging-level constants.

	TRACE   string = "TRACE"
	DEBUG   string = "DEBUG"
	INFO    string = "INFO"
	WARNING string = "WARNING"
	ERROR   string = "ERROR"
	OFF     string = "OFF"
)

const (
	// DefaultSectorSize is used when the boot sector cannot be consulted
	// yet (e.g. validating flags before the image is opened).
	DefaultSectorSize = 512

	// DefaultMftRecordSize matches the common on-disk default; the boot
	// sector's own encoding always overrides this once read.
	DefaultMftRecordSize = 1024

	// MaxSequentialOffsetBytes bounds -O/-o (checked by ValidateConfig) to
	// something that can't overflow an int64 cluster arithmetic
	// computation downstream.
	MaxSequentialOffsetBytes = 1 << 60
)
