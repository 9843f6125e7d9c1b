// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smberr

import "fmt"

// StatusError is an error response carrying a protocol status code.
type StatusError struct {
	Code    uint32
	Message string
	// Err is the error of the protocol client, if any.
	Err error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return unknownStatus(e.Code)
	}
	return e.Message
}

func (e *StatusError) StatusCode() uint32 {
	return e.Code
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ConnectError means the session or the share could not be opened.
// The watch never became active.
type ConnectError struct {
	Reason string
	Err    error
}

func (e *ConnectError) Error() string {
	return "Failed to connect to SMB server: " + e.Reason
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// SubscriptionError means a watch broke, either while registering
// or after it was active.
type SubscriptionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("Watch on %q failed: %s", e.Path, e.Reason)
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

func NewConnectError(err error) *ConnectError {
	return &ConnectError{Reason: Translate(err), Err: err}
}

func NewSubscriptionError(path string, err error) *SubscriptionError {
	return &SubscriptionError{Path: path, Reason: Translate(err), Err: err}
}
