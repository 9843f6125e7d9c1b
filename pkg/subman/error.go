// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package subman

import (
	"errors"
	"fmt"
)

var (
	ErrTreeMissing       = errors.New("Tree is missing.")
	ErrClassifierMissing = errors.New("Classifier is missing.")
	ErrEmitterMissing    = errors.New("Emitter is missing.")
	ErrLoggerMissing     = errors.New("Logger is missing.")
	ErrRecorderMissing   = errors.New("Recorder is missing.")

	// ErrNotificationsClosed means the change source went away
	// without reporting why.
	ErrNotificationsClosed = errors.New("notification channel closed unexpectedly")
	ErrStopped             = errors.New("Subscription has been stopped.")
)

type ErrInvalidTarget struct {
	Target fmt.Stringer
}

func (e *ErrInvalidTarget) Error() string {
	return fmt.Sprintf("invalid target event %s", e.Target)
}

type ErrWrongState struct {
	Expected State
	Actual   State
}

func (e *ErrWrongState) Error() string {
	return fmt.Sprintf("subscription is %s, expected %s", e.Actual, e.Expected)
}
