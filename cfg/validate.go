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

import "fmt"

const (
	BothOffsetsSetError     = "only one of offset-sectors and offset-bytes may be set"
	InvalidSectorSizeError  = "sector-size must be a power of two"
	InvalidSeverityError    = "logging.severity must be one of TRACE, DEBUG, INFO, WARNING, ERROR, OFF"
	InvalidFormatError      = "logging.format must be one of text, json"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidSeverity(s string) bool {
	switch s {
	case TRACE, DEBUG, INFO, WARNING, ERROR, OFF:
		return true
	default:
		return false
	}
}

func isValidFormat(f string) bool {
	return f == "text" || f == "json"
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func isValidImageConfig(c *ImageConfig) error {
	if c.OffsetSectors >= 0 && c.OffsetBytes != 0 {
		return fmt.Errorf(BothOffsetsSetError)
	}
	if c.SectorSize == 0 {
		c.SectorSize = DefaultSectorSize
	}
	if !isPowerOfTwo(c.SectorSize) {
		return fmt.Errorf(InvalidSectorSizeError)
	}
	if c.OffsetBytes > MaxSequentialOffsetBytes || c.OffsetSectors > MaxSequentialOffsetBytes/int64(c.SectorSize) {
		return fmt.Errorf("offset exceeds %d bytes", int64(MaxSequentialOffsetBytes))
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	if err := isValidImageConfig(&config.Image); err != nil {
		return fmt.Errorf("error parsing image config: %w", err)
	}
	if !isValidSeverity(config.Logging.Severity) {
		return fmt.Errorf(InvalidSeverityError)
	}
	if !isValidFormat(config.Logging.Format) {
		return fmt.Errorf(InvalidFormatError)
	}
	if err := isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}
	if config.Correlate.WorkerCount < 0 {
		return fmt.Errorf("correlate.worker-count must not be negative")
	}
	return nil
}

// FilesystemOffsetBytes resolves the first of offset_bytes (if supplied),
// offset_sectors * sector_size, or 0 -- per the boot-sector decoder's
// documented precedence.
func (c *ImageConfig) FilesystemOffsetBytes() int64 {
	if c.OffsetBytes != 0 {
		return c.OffsetBytes
	}
	if c.OffsetSectors >= 0 {
		sectorSize := int64(c.SectorSize)
		if sectorSize == 0 {
			sectorSize = DefaultSectorSize
		}
		return c.OffsetSectors * sectorSize
	}
	return 0
}
