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

// Package mft decodes Master File Table records: the FILE record header,
// the attribute list (resident and non-resident forms, runlist expansion),
// and the bootstrap/iteration logic that turns a raw image into a
// map[inum]MftEntry.
package mft

import "fmt"

// AttributeType discriminates an attribute's semantic kind. Values are the
// bit-exact NTFS type codes.
type AttributeType uint32

const (
	AttrStandardInformation AttributeType = 0x10
	AttrAttributeList       AttributeType = 0x20
	AttrFileName            AttributeType = 0x30
	AttrObjectID            AttributeType = 0x40
	AttrSecurityDescriptor  AttributeType = 0x50
	AttrVolumeName          AttributeType = 0x60
	AttrVolumeInformation   AttributeType = 0x70
	AttrData                AttributeType = 0x80
	AttrIndexRoot           AttributeType = 0x90
	AttrIndexAllocation     AttributeType = 0xA0
	AttrBitmap              AttributeType = 0xB0
	AttrReparsePoint        AttributeType = 0xC0
	AttrEAInformation       AttributeType = 0xD0
	AttrEA                  AttributeType = 0xE0
	AttrLoggedUtilityStream AttributeType = 0x100
	AttrEndOfList           AttributeType = 0xFFFFFFFF
)

func (t AttributeType) String() string {
	switch t {
	case AttrStandardInformation:
		return "$STANDARD_INFORMATION"
	case AttrAttributeList:
		return "$ATTRIBUTE_LIST"
	case AttrFileName:
		return "$FILE_NAME"
	case AttrObjectID:
		return "$OBJECT_ID"
	case AttrSecurityDescriptor:
		return "$SECURITY_DESCRIPTOR"
	case AttrVolumeName:
		return "$VOLUME_NAME"
	case AttrVolumeInformation:
		return "$VOLUME_INFORMATION"
	case AttrData:
		return "$DATA"
	case AttrIndexRoot:
		return "$INDEX_ROOT"
	case AttrIndexAllocation:
		return "$INDEX_ALLOCATION"
	case AttrBitmap:
		return "$BITMAP"
	case AttrReparsePoint:
		return "$REPARSE_POINT"
	case AttrEAInformation:
		return "$EA_INFORMATION"
	case AttrEA:
		return "$EA"
	case AttrLoggedUtilityStream:
		return "$LOGGED_UTILITY_STREAM"
	default:
		return fmt.Sprintf("UNKNOWN(0x%x)", uint32(t))
	}
}

// AttributeForm distinguishes resident from non-resident attribute bodies.
type AttributeForm int

const (
	Resident AttributeForm = iota
	NonResident
)

// Run is one extent of a non-resident attribute's runlist. It is modeled as
// a tagged union so extraction can never accidentally read backing clusters
// for a sparse run.
type Run struct {
	Sparse bool
	// LengthClusters is valid for both variants.
	LengthClusters uint64
	// Lcn is only meaningful when Sparse is false.
	Lcn uint64
}

// Runlist is the ordered sequence of extents backing a non-resident
// attribute.
type Runlist []Run

// Attribute is a single decoded MFT attribute: common header fields plus
// its form-specific payload.
type Attribute struct {
	Type           AttributeType
	Name           string
	Form           AttributeForm
	AttributeID    uint16
	Flags          uint16
	Indexed        bool
	ResidentData   []byte // valid when Form == Resident
	StartingVCN    uint64 // valid when Form == NonResident
	LastVCN        uint64
	AllocatedSize  uint64
	RealSize       uint64
	InitializedSize uint64
	Runlist        Runlist // valid when Form == NonResident

	// Decoded payload, present for the handful of attribute types this
	// tool understands natively; nil (and Type still set) otherwise.
	StandardInformation *StandardInformation
	FileName             *FileNameAttribute
}

// StandardInformation is the decoded $STANDARD_INFORMATION payload.
type StandardInformation struct {
	CreationTime   uint64 // raw FILETIME, decode via FiletimeToTime
	ModificationTime uint64
	MftModificationTime uint64
	AccessTime     uint64
	FileAttributes uint32
}

// Namespace identifies which naming convention a FILE_NAME attribute uses.
type Namespace int

const (
	NamespacePosix Namespace = iota
	NamespaceWin32
	NamespaceDOS
	NamespaceWin32AndDOS
)

func (n Namespace) String() string {
	switch n {
	case NamespacePosix:
		return "POSIX"
	case NamespaceWin32:
		return "Win32"
	case NamespaceDOS:
		return "DOS"
	case NamespaceWin32AndDOS:
		return "Win32+DOS"
	default:
		return "UNKNOWN"
	}
}

// FileReference identifies an MFT entry by inum plus the sequence_value it
// was valid under, as stored in parent references.
type FileReference struct {
	Inum     uint64
	Sequence uint16
}

// FileNameAttribute is the decoded $FILE_NAME payload.
type FileNameAttribute struct {
	Parent           FileReference
	CreationTime     uint64
	ModificationTime uint64
	MftModificationTime uint64
	AccessTime       uint64
	AllocatedSize    uint64
	RealSize         uint64
	FileAttributes   uint32
	Namespace        Namespace
	Name             string
}

// MftEntry is a fully-decoded, base-merged MFT record.
type MftEntry struct {
	Inum           uint64
	SequenceValue  uint16
	IsInUse        bool
	IsDirectory    bool
	BaseReference  uint64
	Attributes     map[AttributeType][]Attribute
}

// FileNames returns every decoded $FILE_NAME attribute on the entry, in
// attribute-list order.
func (e *MftEntry) FileNames() []*FileNameAttribute {
	var out []*FileNameAttribute
	for _, a := range e.Attributes[AttrFileName] {
		if a.FileName != nil {
			out = append(out, a.FileName)
		}
	}
	return out
}

// CurrentFileName selects the Win32 (or Win32+DOS) FILE_NAME variant, then
// a POSIX-namespace name; a bare DOS-namespace name is returned only when
// no other variant exists.
func (e *MftEntry) CurrentFileName() string {
	const unknown = "~unknown~"
	names := e.FileNames()
	if len(names) == 0 {
		return unknown
	}
	for _, n := range names {
		if n.Namespace == NamespaceWin32 || n.Namespace == NamespaceWin32AndDOS {
			return n.Name
		}
	}
	for _, n := range names {
		if n.Namespace == NamespacePosix {
			return n.Name
		}
	}
	// Only DOS-namespace names remain; still better than "~unknown~".
	return names[0].Name
}

// DataAttributes returns every $DATA attribute on the entry, in
// attribute-list order (index 0 is the unnamed default stream).
func (e *MftEntry) DataAttributes() []Attribute {
	return e.Attributes[AttrData]
}
