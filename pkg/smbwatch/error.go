// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smbwatch

import "errors"

var (
	ErrConfigMissing    = errors.New("Configuration is missing.")
	ErrConnectorMissing = errors.New("Connector is missing.")
	ErrEmitterMissing   = errors.New("Emitter is missing.")
	ErrLoggerMissing    = errors.New("Logger is missing.")
	ErrRecorderMissing  = errors.New("Recorder is missing.")
)
