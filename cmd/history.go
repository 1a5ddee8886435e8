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

	"github.com/NTFSparse/ntfs-parse/internal/clock"
	"github.com/NTFSparse/ntfs-parse/internal/correlate"
	"github.com/NTFSparse/ntfs-parse/internal/logfile"
	"github.com/NTFSparse/ntfs-parse/internal/present"
	"github.com/NTFSparse/ntfs-parse/internal/usnjrnl"
	"github.com/spf13/cobra"
)

var historyDeletedOnly bool

var historyCmd = &cobra.Command{
	Use:   "history <image> <output>",
	Short: "Correlate $UsnJrnl records against $LogFile transactions into a per-inode history",
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

		logfileEntry, ok := eng.Entry(mftInumLogFile)
		if !ok {
			return fmt.Errorf("MFT inum %d ($LogFile) not found", mftInumLogFile)
		}
		if len(logfileEntry.DataAttributes()) == 0 {
			return fmt.Errorf("$LogFile MFT entry has no $DATA attribute")
		}
		logfileData, err := eng.ExtractData(mftInumLogFile, 0)
		if err != nil {
			return err
		}
		logfileResult, err := logfile.Parse(logfileData, logfile.Options{
			SectorSize:       v.geometry.SectorSize,
			Workers:          uint32(c.Correlate.WorkerCount),
			ErrorPageDumpDir: c.Correlate.ErrorPageDumpDir,
			Recorder:         v.recorder,
		})
		if err != nil {
			return err
		}

		usnStream, err := usnjrnl.ExtractJStream(eng)
		if err != nil {
			return err
		}
		usnRecords, usnDiags := usnjrnl.DecodeRecords(usnStream)
		usnHistories := usnjrnl.GroupByEntry(usnRecords)

		histories := correlate.Build(usnHistories, eng.Entries(), logfileResult.Transactions)
		if err := present.WriteHistoryReport(args[1], histories, historyDeletedOnly, clock.RealClock{}); err != nil {
			return err
		}

		diagCount := len(logfileResult.Diagnostics) + len(usnDiags)
		if diagCount > 0 {
			for _, d := range logfileResult.Diagnostics {
				fmt.Fprintln(os.Stderr, d.String())
			}
			for _, d := range usnDiags {
				fmt.Fprintln(os.Stderr, d.String())
			}
			os.Exit(ExitCompletedWithSkips)
		}
		os.Exit(ExitOK)
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyDeletedOnly, "deleted-only", false, "Only show sequence_value slots older than the entry's current sequence.")
}
