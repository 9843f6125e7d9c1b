// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/black-desk/lib/go/logger"
	"github.com/spf13/cobra"
)

var flags struct {
	CfgPath string
}

var rootCmd = &cobra.Command{
	Use:   "smbwatch",
	Short: "Watch folders on a SMB share and report the changes",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf(
				"\n\n%w\n"+CheckDocumentString,
				err,
			)

			return
		}()
		err = rootCmdRun()
		return
	},
}

func rootCmdRun() (err error) {
	log := logger.Get("smbwatch")

	cfg, err := loadConfig(log, true)
	if err != nil {
		log.Errorw("Failed to load configuration.",
			"file", flags.CfgPath,
			"error", err)
		return
	}

	a, err := injectedApp(cfg, log)
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			cancel(&ErrCancelBySignal{Signal: sig})
		case <-ctx.Done():
		}
	}()

	err = a.Run(ctx)

	var cancelBySignal *ErrCancelBySignal
	if errors.As(context.Cause(ctx), &cancelBySignal) {
		log.Infow("Signal received, exiting...",
			"signal", cancelBySignal.Signal,
		)
		err = nil
		return
	}

	if err == nil {
		return
	}

	log.Debugw(
		"Watches exited with error.",
		"error", err,
	)

	return
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cfgPath := os.Getenv("CONFIGURATION_DIRECTORY")
	if cfgPath == "" {
		cfgPath = SMBWatchCfgPath
	} else {
		cfgPath += "/config.yaml"
	}

	rootCmd.PersistentFlags().StringVarP(
		&flags.CfgPath,
		"config", "c", cfgPath,
		"the configure file to use",
	)
}
