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

// GetDefaultConfig returns the configuration used before any flag or config
// file has been parsed, the same role the teacher's GetDefaultLoggingConfig
// plays during application startup.
func GetDefaultConfig() Config {
	return Config{
		Image: ImageConfig{
			OffsetSectors: -1,
			OffsetBytes:   0,
			SectorSize:    DefaultSectorSize,
		},
		Logging: GetDefaultLoggingConfig(),
		Correlate: CorrelateConfig{
			WorkerCount: 0,
		},
	}
}

// GetDefaultLoggingConfig returns the default logging configuration to use
// during application startup, before the provided configuration has been
// parsed.
func GetDefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Severity: INFO,
		Format:   "text",
		LogRotate: LogRotateLoggingConfig{
			BackupFileCount: 10,
			Compress:        true,
			MaxFileSizeMb:   512,
		},
	}
}
