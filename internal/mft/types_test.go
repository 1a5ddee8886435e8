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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entryWithNames(names ...*FileNameAttribute) MftEntry {
	e := MftEntry{Attributes: map[AttributeType][]Attribute{}}
	for _, n := range names {
		e.Attributes[AttrFileName] = append(e.Attributes[AttrFileName], Attribute{Type: AttrFileName, FileName: n})
	}
	return e
}

func TestCurrentFileName_PrefersWin32OverDOS(t *testing.T) {
	e := entryWithNames(
		&FileNameAttribute{Namespace: NamespaceDOS, Name: "HELLO~1.TXT"},
		&FileNameAttribute{Namespace: NamespaceWin32, Name: "hello world.txt"},
	)

	assert.Equal(t, "hello world.txt", e.CurrentFileName())
}

func TestCurrentFileName_Win32AndDOSCounts(t *testing.T) {
	e := entryWithNames(&FileNameAttribute{Namespace: NamespaceWin32AndDOS, Name: "both.txt"})

	assert.Equal(t, "both.txt", e.CurrentFileName())
}

func TestCurrentFileName_FallsBackToPosix(t *testing.T) {
	e := entryWithNames(&FileNameAttribute{Namespace: NamespacePosix, Name: "posix-name"})

	assert.Equal(t, "posix-name", e.CurrentFileName())
}

func TestCurrentFileName_FallsBackToDOSOnlyWhenNothingElse(t *testing.T) {
	e := entryWithNames(&FileNameAttribute{Namespace: NamespaceDOS, Name: "HELLO~1.TXT"})

	assert.Equal(t, "HELLO~1.TXT", e.CurrentFileName())
}

func TestCurrentFileName_UnknownWhenNoFileNameAttribute(t *testing.T) {
	e := entryWithNames()

	assert.Equal(t, "~unknown~", e.CurrentFileName())
}

func TestDataAttributes_UnnamedStreamIsIndexZero(t *testing.T) {
	e := MftEntry{Attributes: map[AttributeType][]Attribute{
		AttrData: {
			{Type: AttrData, Name: ""},
			{Type: AttrData, Name: "alt_stream"},
		},
	}}

	streams := e.DataAttributes()

	assert.Len(t, streams, 2)
	assert.Equal(t, "", streams[0].Name)
	assert.Equal(t, "alt_stream", streams[1].Name)
}
