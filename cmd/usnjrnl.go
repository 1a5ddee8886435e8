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

	"github.com/NTFSparse/ntfs-parse/internal/present"
	"github.com/NTFSparse/ntfs-parse/internal/usnjrnl"
	"github.com/spf13/cobra"
)

var usnjrnlCmd = &cobra.Command{
	Use:   "usnjrnl <image> <output>",
	Short: "Decode the $UsnJrnl $J change-journal stream to CSV",
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
		stream, err := usnjrnl.ExtractJStream(eng)
		if err != nil {
			return err
		}

		records, diags := usnjrnl.DecodeRecords(stream)
		histories := usnjrnl.GroupByEntry(records)
		if err := present.WriteUsnJrnlCSV(args[1], histories); err != nil {
			return err
		}

		if len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, d.String())
			}
			os.Exit(ExitCompletedWithSkips)
		}
		os.Exit(ExitOK)
		return nil
	},
}
