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

	"github.com/spf13/cobra"
)

var bootsectorCmd = &cobra.Command{
	Use:   "bootsector <image>",
	Short: "Decode the boot sector and print the volume geometry",
	Args:  cobra.ExactArgs(1),
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

		g := v.geometry
		fmt.Printf("sector_size: %d\n", g.SectorSize)
		fmt.Printf("sectors_per_cluster: %d\n", g.SectorsPerCluster)
		fmt.Printf("bytes_per_cluster: %d\n", g.BytesPerCluster)
		fmt.Printf("total_sectors: %d\n", g.TotalSectors)
		fmt.Printf("mft_lcn: %d\n", g.MftLcn)
		fmt.Printf("mft_mirror_lcn: %d\n", g.MftMirrorLcn)
		fmt.Printf("mft_record_size: %d\n", g.MftRecordSize)
		fmt.Printf("filesystem_offset_bytes: %d\n", g.FilesystemOffsetBytes)
		fmt.Printf("mft_start_offset_bytes: %d\n", g.MftStartOffsetBytes)

		os.Exit(ExitOK)
		return nil
	},
}
