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

package cmd

import (
	"fmt"
	"os"

	"github.com/NTFSparse/ntfs-parse/internal/logfile"
	"github.com/NTFSparse/ntfs-parse/internal/present"
	"github.com/spf13/cobra"
)

// mftInumLogFile is the well-known MFT entry for $LogFile.
const mftInumLogFile = 2

var (
	logfileCSV            bool
	logfilePerTransDir    string
	logfileOnlyContainsUsn bool
)

var logfileCmd = &cobra.Command{
	Use:   "logfile <image> <output>",
	Short: "Decode $LogFile transactions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := prepareConfig()
		if err != nil {
			return err
		}
		v, err := openVolume(args[0], c)
		if err != nil {
			return err
		}
		defer v.Close()

		eng, err := v.mftEngine(c)
		if err != nil {
			return err
		}
		entry, ok := eng.Entry(mftInumLogFile)
		if !ok {
			return fmt.Errorf("MFT inum %d ($LogFile) not found", mftInumLogFile)
		}
		streams := entry.DataAttributes()
		if len(streams) == 0 {
			return fmt.Errorf("$LogFile MFT entry has no $DATA attribute")
		}
		data, err := eng.ExtractData(mftInumLogFile, 0)
		if err != nil {
			return err
		}

		result, err := logfile.Parse(data, logfile.Options{
			SectorSize:       v.geometry.SectorSize,
			Workers:          uint32(c.Correlate.WorkerCount),
			ErrorPageDumpDir: c.Correlate.ErrorPageDumpDir,
			Recorder:         v.recorder,
		})
		if err != nil {
			return err
		}

		switch {
		case logfilePerTransDir != "":
			err = present.WriteLogFilePerTransaction(logfilePerTransDir, result.Transactions)
		case logfileOnlyContainsUsn:
			err = present.WriteLogFileFiltered(args[1], result.Transactions, func(t logfile.Transaction) bool { return t.ContainsUsn })
		case logfileCSV:
			err = present.WriteLogFileCSV(args[1], result.Transactions)
		default:
			err = present.WriteLogFileText(args[1], result.Transactions)
		}
		if err != nil {
			return err
		}

		if len(result.Diagnostics) > 0 {
			for _, d := range result.Diagnostics {
				fmt.Fprintln(os.Stderr, d.String())
			}
			os.Exit(ExitCompletedWithSkips)
		}
		os.Exit(ExitOK)
		return nil
	},
}

func init() {
	logfileCmd.Flags().BoolVar(&logfileCSV, "csv", false, "Write one row per client record instead of a text report.")
	logfileCmd.Flags().StringVar(&logfilePerTransDir, "per-transaction-dir", "", "Write one file per transaction into this directory instead of a single report.")
	logfileCmd.Flags().BoolVar(&logfileOnlyContainsUsn, "only-contains-usn", false, "Only include transactions that carry a $UsnJrnl write.")
}
