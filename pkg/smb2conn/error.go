// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smb2conn

import (
	"errors"

	"github.com/black-desk/smbwatch/pkg/smberr"
	"github.com/hirochachacha/go-smb2"
)

var (
	ErrLoggerMissing = errors.New("Logger is missing.")
	// ErrNTLMv1Unsupported is returned when credentials ask for NTLMv1,
	// which the protocol client does not implement.
	ErrNTLMv1Unsupported = errors.New("NTLMv1 authentication is not supported, use auto or v2")
)

// statusError exposes the status code of a protocol error response
// to the error translator.
func statusError(err error) error {
	var resp *smb2.ResponseError
	if !errors.As(err, &resp) {
		return err
	}

	return &smberr.StatusError{
		Code:    resp.Code,
		Message: err.Error(),
		Err:     err,
	}
}
