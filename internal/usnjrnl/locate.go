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

package usnjrnl

import (
	"fmt"

	"github.com/NTFSparse/ntfs-parse/internal/mft"
)

// LocateJStream finds the $UsnJrnl metadata file among engine's entries and
// returns its inum and the ordinal, among its $DATA attributes, of the
// named "$J" stream -- the journal itself (the unnamed stream, "$Max", only
// holds configuration and is not decoded here).
func LocateJStream(entries map[uint64]mft.MftEntry) (inum uint64, streamOrdinal int, err error) {
	for i, entry := range entries {
		if entry.CurrentFileName() != "$UsnJrnl" {
			continue
		}
		for idx, attr := range entry.DataAttributes() {
			if attr.Name == "$J" {
				return i, idx, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("no $UsnJrnl entry with a $J data stream found")
}

// ExtractJStream locates and extracts the $J stream via eng.
func ExtractJStream(eng *mft.Engine) ([]byte, error) {
	inum, ordinal, err := LocateJStream(eng.Entries())
	if err != nil {
		return nil, err
	}
	return eng.ExtractData(inum, ordinal)
}
