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

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags registers every CLI flag this tool accepts on flagSet and binds
// each one to its Viper key, the same wiring the teacher's cfg.BindFlags
// performs for gcsfuse's mount flags.
func BindFlags(flagSet *pflag.FlagSet) error {
	var err error

	flagSet.Int64P("offset-sectors", "o", -1, "Filesystem offset in sectors. Mutually exclusive with -O.")
	if err = viper.BindPFlag("image.offset-sectors", flagSet.Lookup("offset-sectors")); err != nil {
		return err
	}

	flagSet.Int64P("offset-bytes", "O", 0, "Filesystem offset in bytes. Mutually exclusive with -o.")
	if err = viper.BindPFlag("image.offset-bytes", flagSet.Lookup("offset-bytes")); err != nil {
		return err
	}

	flagSet.IntP("sector-size", "", DefaultSectorSize, "Sector size in bytes; must be a power of two.")
	if err = viper.BindPFlag("image.sector-size", flagSet.Lookup("sector-size")); err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", INFO, "One of TRACE, DEBUG, INFO, WARNING, ERROR, OFF.")
	if err = viper.BindPFlag("logging.severity", flagSet.Lookup("log-severity")); err != nil {
		return err
	}

	flagSet.StringP("log-format", "", "text", "One of text, json.")
	if err = viper.BindPFlag("logging.format", flagSet.Lookup("log-format")); err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "Path to write logs to. Empty means stderr.")
	if err = viper.BindPFlag("logging.file", flagSet.Lookup("log-file")); err != nil {
		return err
	}

	flagSet.StringP("error-page-dir", "", "", "Directory malformed $LogFile pages are dumped to.")
	if err = viper.BindPFlag("correlate.error-page-dump-dir", flagSet.Lookup("error-page-dir")); err != nil {
		return err
	}

	flagSet.IntP("throttle-bytes-per-sec", "", 0, "Bound image-read throughput; 0 disables throttling.")
	if err = viper.BindPFlag("correlate.throttle-bytes-per-sec", flagSet.Lookup("throttle-bytes-per-sec")); err != nil {
		return err
	}

	flagSet.IntP("workers", "", 0, "Worker pool size for parallel decoding; 0 means the CPU count, at least 4.")
	if err = viper.BindPFlag("correlate.worker-count", flagSet.Lookup("workers")); err != nil {
		return err
	}

	flagSet.BoolP("perf", "p", false, "Enable performance-timing instrumentation.")
	if err = viper.BindPFlag("perf.enabled", flagSet.Lookup("perf")); err != nil {
		return err
	}

	flagSet.StringP("perf-listen-addr", "", "", "Prometheus listen address, stored in the config; no metrics endpoint is served.")
	if err = viper.BindPFlag("perf.listen-addr", flagSet.Lookup("perf-listen-addr")); err != nil {
		return err
	}

	return nil
}
