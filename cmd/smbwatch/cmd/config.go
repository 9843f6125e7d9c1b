// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"os"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"go.uber.org/zap"
)

// loadConfig reads the configuration file.
// The built-in configuration is used if the default file is missing.
func loadConfig(log *zap.SugaredLogger, fallback bool) (ret *config.Config, err error) {
	content, err := os.ReadFile(flags.CfgPath)
	if fallback && errors.Is(err, os.ErrNotExist) &&
		flags.CfgPath == SMBWatchCfgPath {
		log.Errorw("Configuration file missing fallback to default config.")

		content = []byte(config.DefaultConfig)
		err = nil
	} else if err != nil {
		Wrap(&err, "read configuration from %s", flags.CfgPath)
		return
	}

	return config.New(
		config.WithContent(content),
		config.WithLogger(log),
	)
}
