// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

const (
	CheckDocumentString = `
Go to check
1. documentation https://pkg.go.dev/github.com/black-desk/smbwatch/cmd/smbwatch
2. wiki https://github.com/black-desk/smbwatch/wiki
for some help.
`
	SMBWatchCfgPath = "/etc/smbwatch/config.yaml"
)
