// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sessman

import "errors"

var (
	ErrConnectorMissing   = errors.New("Connector is missing.")
	ErrCredentialsMissing = errors.New("Credentials is missing.")
	ErrLoggerMissing      = errors.New("Logger is missing.")
)
