// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

import "fmt"

// Action is a FILE_ACTION_* code of an SMB2 CHANGE_NOTIFY response entry.
type Action uint32

const (
	ActionAdded           Action = 0x01
	ActionRemoved         Action = 0x02
	ActionModified        Action = 0x03
	ActionRenamedOldName  Action = 0x04
	ActionRenamedNewName  Action = 0x05
	ActionAddedStream     Action = 0x06
	ActionRemovedStream   Action = 0x07
	ActionModifiedStream  Action = 0x08
	ActionRemovedByDelete Action = 0x09
)

var actionNames = map[Action]string{
	ActionAdded:           "added",
	ActionRemoved:         "removed",
	ActionModified:        "modified",
	ActionRenamedOldName:  "renamedOldName",
	ActionRenamedNewName:  "renamedNewName",
	ActionAddedStream:     "addedStream",
	ActionRemovedStream:   "removedStream",
	ActionModifiedStream:  "modifiedStream",
	ActionRemovedByDelete: "removedByDelete",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint32(a))
}

// ActionClass is the abstract bucket an action code maps to.
type ActionClass uint8

const (
	ActionClassNone    ActionClass = iota // none
	ActionClassCreated                    // created
	ActionClassDeleted                    // deleted
	ActionClassUpdated                    // updated
)

func (c ActionClass) String() string {
	switch c {
	case ActionClassCreated:
		return "created"
	case ActionClassDeleted:
		return "deleted"
	case ActionClassUpdated:
		return "updated"
	default:
		return "none"
	}
}

// FileKind and FolderKind return the exact kinds of this class.
func (c ActionClass) FileKind() EventKind {
	switch c {
	case ActionClassCreated:
		return EventKindFileCreated
	case ActionClassDeleted:
		return EventKindFileDeleted
	case ActionClassUpdated:
		return EventKindFileUpdated
	default:
		return EventKindInvalid
	}
}

func (c ActionClass) FolderKind() EventKind {
	switch c {
	case ActionClassCreated:
		return EventKindFolderCreated
	case ActionClassDeleted:
		return EventKindFolderDeleted
	case ActionClassUpdated:
		return EventKindFolderUpdated
	default:
		return EventKindInvalid
	}
}
