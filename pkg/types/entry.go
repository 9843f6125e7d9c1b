// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

import (
	"encoding/json"
	"time"
)

// EntryType is what a change record refers to, as far as we could tell.
type EntryType uint8

const (
	EntryTypeUnknown   EntryType = iota // unknown
	EntryTypeFile                       // file
	EntryTypeDirectory                  // directory
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeFile:
		return "file"
	case EntryTypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the isDirectory field: true, false or "unknown".
func (t EntryType) MarshalJSON() ([]byte, error) {
	switch t {
	case EntryTypeFile:
		return []byte("false"), nil
	case EntryTypeDirectory:
		return []byte("true"), nil
	default:
		return json.Marshal("unknown")
	}
}

const FileAttributeDirectory uint32 = 0x10

// DirEntry is one entry of a directory listing.
// Size and ModTime are zero if the lister does not know them.
type DirEntry struct {
	Name       string
	Attributes uint32
	Size       int64
	ModTime    time.Time
}

func (e *DirEntry) IsDir() bool {
	return e.Attributes&FileAttributeDirectory != 0
}
