// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/lib/go/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkConfigCmd represents the config command
var checkConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Check configuration",
	Long:  `Validate configuration.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf("\n%w\n"+CheckDocumentString, err)

			return
		}()

		err = checkConfigCmdRun()
		return
	},
}

func checkLogger() *zap.SugaredLogger {
	if checkFlags.EnableLogger {
		return logger.Get("smbwatch")
	}
	return zap.NewNop().Sugar()
}

func checkConfigCmdRun() (err error) {
	defer Wrap(&err, "check configuration")

	_, err = loadConfig(checkLogger(), false)
	return
}

func init() {
	checkCmd.AddCommand(checkConfigCmd)
}
