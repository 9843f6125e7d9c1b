// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

import (
	"encoding/json"
	"fmt"
)

// EventKind is the semantic change a watch can be configured to report.
type EventKind uint8

const (
	EventKindInvalid            EventKind = iota // invalid
	EventKindFileCreated                         // fileCreated
	EventKindFileDeleted                         // fileDeleted
	EventKindFileUpdated                         // fileUpdated
	EventKindFolderCreated                       // folderCreated
	EventKindFolderDeleted                       // folderDeleted
	EventKindFolderUpdated                       // folderUpdated
	EventKindWatchFolderUpdated                  // watchFolderUpdated
)

var eventKindNames = [...]string{
	EventKindInvalid:            "invalid",
	EventKindFileCreated:        "fileCreated",
	EventKindFileDeleted:        "fileDeleted",
	EventKindFileUpdated:        "fileUpdated",
	EventKindFolderCreated:      "folderCreated",
	EventKindFolderDeleted:      "folderDeleted",
	EventKindFolderUpdated:      "folderUpdated",
	EventKindWatchFolderUpdated: "watchFolderUpdated",
}

// EventKinds lists every valid kind in declaration order.
var EventKinds = []EventKind{
	EventKindFileCreated,
	EventKindFileDeleted,
	EventKindFileUpdated,
	EventKindFolderCreated,
	EventKindFolderDeleted,
	EventKindFolderUpdated,
	EventKindWatchFolderUpdated,
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

func (k EventKind) Valid() bool {
	return k > EventKindInvalid && k <= EventKindWatchFolderUpdated
}

func ParseEventKind(s string) (ret EventKind, err error) {
	for _, k := range EventKinds {
		if k.String() == s {
			ret = k
			return
		}
	}

	err = &ErrUnknownEventKind{Actual: s}
	return
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseEventKind(string(text))
	return
}

func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// EventKindSet is the candidate set a raw record could represent.
type EventKindSet uint16

func NewEventKindSet(kinds ...EventKind) (ret EventKindSet) {
	for _, k := range kinds {
		ret = ret.Add(k)
	}
	return
}

func (s EventKindSet) Add(k EventKind) EventKindSet {
	if !k.Valid() {
		return s
	}
	return s | 1<<k
}

func (s EventKindSet) Has(k EventKind) bool {
	return k.Valid() && s&(1<<k) != 0
}

func (s EventKindSet) Empty() bool {
	return s == 0
}

func (s EventKindSet) Len() (n int) {
	for _, k := range EventKinds {
		if s.Has(k) {
			n++
		}
	}
	return
}

func (s EventKindSet) Kinds() (ret []EventKind) {
	for _, k := range EventKinds {
		if s.Has(k) {
			ret = append(ret, k)
		}
	}
	return
}

func (s EventKindSet) String() string {
	return fmt.Sprint(s.Kinds())
}
