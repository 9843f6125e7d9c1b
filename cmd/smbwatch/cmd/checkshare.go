// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/sessman"
	"github.com/spf13/cobra"
)

// checkShareCmd represents the share command
var checkShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Check share access",
	Long: `Authenticate against the server, open the share
and list every folder configured to be watched.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf("\n%w\n"+CheckDocumentString, err)

			return
		}()

		err = checkShareCmdRun(cmd)
		return
	},
}

func checkShareCmdRun(cmd *cobra.Command) (err error) {
	defer Wrap(&err, "check share")

	log := checkLogger()

	cfg, err := loadConfig(log, false)
	if err != nil {
		return
	}

	connector, err := injectedConnector(cfg, log)
	if err != nil {
		return
	}

	sm, err := sessman.New(
		sessman.WithConnector(connector),
		sessman.WithCredentials(cfg.Credentials),
		sessman.WithLogger(log),
	)
	if err != nil {
		return
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tree, closer, err := sm.Open(ctx)
	if err != nil {
		return
	}
	defer func() {
		closeErr := closer()
		if err == nil {
			err = closeErr
		}
	}()

	for i := range cfg.Watches {
		folder := cfg.Watches[i].Folder

		_, err = tree.ListDirectory(ctx, folder)
		if err != nil {
			Wrap(&err, "list folder %q", folder)
			return
		}

		log.Infow("Folder accessible.", "folder", folder)
	}

	return
}

func init() {
	checkCmd.AddCommand(checkShareCmd)
}
