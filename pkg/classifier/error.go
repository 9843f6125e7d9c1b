// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package classifier

import "errors"

var (
	ErrResolverMissing = errors.New("Type resolver is missing.")
	ErrLoggerMissing   = errors.New("Logger is missing.")
)
