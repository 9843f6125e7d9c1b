// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smberr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

type statusCoder interface {
	StatusCode() uint32
}

// Translate turns any error from the transport, the protocol
// or authentication into one readable line.
// It never panics and does no I/O.
func Translate(err error) (ret string) {
	if err == nil {
		return MsgUnknown
	}

	defer func() {
		if recover() != nil {
			ret = MsgUnknown
		}
	}()

	code, hasCode := Status(err)
	if hasCode {
		if desc, ok := Codes[code]; ok {
			return fmt.Sprintf("%s (Code: %d)", desc, code)
		}
	}

	if msg, ok := connectionFailure(err); ok {
		return msg
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	if hasCode {
		return unknownStatus(code)
	}

	if msg := fmt.Sprintf("%v", err); msg != "" {
		return msg
	}

	return MsgUnknown
}

// Status finds the first protocol status code in the wrap chain.
func Status(err error) (code uint32, ok bool) {
	var coder statusCoder
	if !errors.As(err, &coder) {
		return
	}

	code = coder.StatusCode()
	ok = true
	return
}

func connectionFailure(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, unix.ECONNREFUSED):
		return MsgConnectionRefused, true
	case errors.Is(err, unix.ETIMEDOUT),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, os.ErrDeadlineExceeded):
		return MsgConnectionTimedOut, true
	case errors.Is(err, unix.EHOSTUNREACH):
		return MsgServerNotFound, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return MsgConnectionTimedOut, true
		}
		return MsgServerNotFound, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return MsgConnectionTimedOut, true
	}

	return
}

func unknownStatus(code uint32) string {
	return fmt.Sprintf("SMB server returned an error (Code: %d)", code)
}
