// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkFlags struct {
	EnableLogger bool
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration and share access",
	Long:  `Validate configuration, then authenticate and open the configured share.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf("\n\n%w\n"+CheckDocumentString, err)

			return
		}()

		err = checkCmdRun(cmd)
		return
	},
}

func checkCmdRun(cmd *cobra.Command) (err error) {
	err = checkConfigCmdRun()
	if err != nil {
		return
	}

	err = checkShareCmdRun(cmd)
	if err != nil {
		return
	}

	return
}

func init() {
	checkCmd.PersistentFlags().BoolVarP(
		&checkFlags.EnableLogger,
		"log", "l", false,
		"print logs while checking",
	)

	rootCmd.AddCommand(checkCmd)
}
