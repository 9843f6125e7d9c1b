// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "time"

const (
	DefaultConfig = `
version: 1
backend: local
local-root: /srv/smbwatch
credentials:
  host: localhost
  username: smbwatch
  share: data
watches:
  - trigger-on: specificFolder
    folder: ""
    event: fileCreated
`

	TriggerOnSpecificFolder = "specificFolder"

	DefaultPort           uint16 = 445
	DefaultConnectTimeout        = 15 * time.Second
	DefaultRequestTimeout        = 15 * time.Second
	DefaultPollInterval          = 2 * time.Second

	PasswordEnv = "SMBWATCH_PASSWORD"
)
