// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

// RawChangeRecord is a single changed entry as the protocol reports it.
type RawChangeRecord struct {
	Action   Action
	Filename string
}

// Notification is one delivery from a directory watch.
// A non-nil Err means the watch is broken
// and no more notifications will follow.
type Notification struct {
	Records []RawChangeRecord
	Err     error
}

type ClassifiedEvent struct {
	Candidates EventKindSet
	Class      ActionClass
	Action     Action
	Filename   string
	Path       string
	Type       EntryType
}

// WatchRequest is immutable for the life of a subscription.
type WatchRequest struct {
	Path        string
	Recursive   bool
	TargetEvent EventKind
}

// Event is what a consumer receives for every matched record.
type Event struct {
	Event       EventKind `json:"event"`
	Action      Action    `json:"action"`
	ActionName  string    `json:"actionName"`
	Filename    string    `json:"filename"`
	Path        string    `json:"path"`
	IsDirectory EntryType `json:"isDirectory"`
	Watch       string    `json:"watch,omitempty"`
}
