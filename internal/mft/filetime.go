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

package mft

import "time"

// filetimeEpoch is 1601-01-01T00:00:00Z, the zero point Windows FILETIME
// values are measured from, in 100-nanosecond intervals.
var filetimeEpoch = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

// FiletimeToTime converts a raw Windows FILETIME value into a UTC
// time.Time.
func FiletimeToTime(filetime uint64) time.Time {
	seconds := int64(filetime / 10_000_000)
	remainder100ns := int64(filetime % 10_000_000)
	return time.Unix(filetimeEpoch.Unix()+seconds, remainder100ns*100).UTC()
}
