// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package subman

import "fmt"

type State uint8

const (
	StateIdle State = iota
	StateSubscribing
	StateActive
	StateStopping
	StateClosed
	StateFailed
)

var stateNames = [...]string{
	StateIdle:        "idle",
	StateSubscribing: "subscribing",
	StateActive:      "active",
	StateStopping:    "stopping",
	StateClosed:      "closed",
	StateFailed:      "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Terminal reports whether no transition can leave s.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateFailed
}
