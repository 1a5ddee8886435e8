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

// Package cfg holds the typed configuration for ntfs-parse: CLI flags bound
// through Viper, with a YAML config-file escape hatch, validated and
// rationalized before any decoder runs.
package cfg

// Config is the top-level, fully-rationalized configuration for a run.
type Config struct {
	Image     ImageConfig     `yaml:"image"`
	Logging   LoggingConfig   `yaml:"logging"`
	Correlate CorrelateConfig `yaml:"correlate"`
	Perf      PerfConfig      `yaml:"perf"`
}

// ImageConfig describes how to locate the filesystem within the input file.
type ImageConfig struct {
	// OffsetSectors and OffsetBytes are mutually exclusive; ValidateConfig
	// rejects a config that sets both. Zero means "not set" for
	// OffsetBytes; -1 means "not set" for OffsetSectors, since 0 is a
	// meaningful sector offset.
	OffsetSectors int64 `yaml:"offset-sectors"`
	OffsetBytes   int64 `yaml:"offset-bytes"`

	// SectorSize defaults to DefaultSectorSize; must be a power of two.
	SectorSize int `yaml:"sector-size"`
}

// LoggingConfig controls the severity, format, and destination of log
// output, mirroring the teacher's logging config shape.
type LoggingConfig struct {
	Severity  string                 `yaml:"severity"`
	Format    string                 `yaml:"format"`
	File      string                 `yaml:"file"`
	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`
}

// LogRotateLoggingConfig configures lumberjack-based log rotation.
type LogRotateLoggingConfig struct {
	MaxFileSizeMb   int  `yaml:"max-file-size-mb"`
	BackupFileCount int  `yaml:"backup-file-count"`
	Compress        bool `yaml:"compress"`
}

// CorrelateConfig controls the $LogFile/$UsnJrnl correlation pass.
type CorrelateConfig struct {
	// ErrorPageDumpDir is the directory malformed $LogFile pages are
	// dumped to verbatim. Created on demand.
	ErrorPageDumpDir string `yaml:"error-page-dump-dir"`

	// ThrottleBytesPerSec bounds image-read throughput; 0 disables
	// throttling.
	ThrottleBytesPerSec int `yaml:"throttle-bytes-per-sec"`

	// WorkerCount bounds the internal worker pool used to fan out
	// independent MFT-record and $LogFile-page decoding; Rationalize
	// replaces 0 with DefaultWorkerCount().
	WorkerCount int `yaml:"worker-count"`
}

// PerfConfig toggles the -p performance-timing instrumentation. Never part
// of the correctness contract.
type PerfConfig struct {
	Enabled         bool   `yaml:"enabled"`
	ListenAddr      string `yaml:"listen-addr"`
}
