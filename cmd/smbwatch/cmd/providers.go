// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"

	"github.com/black-desk/smbwatch/pkg/broadcast"
	"github.com/black-desk/smbwatch/pkg/emitter"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/localfs"
	"github.com/black-desk/smbwatch/pkg/metrics"
	"github.com/black-desk/smbwatch/pkg/server"
	"github.com/black-desk/smbwatch/pkg/smb2conn"
	"github.com/black-desk/smbwatch/pkg/smbwatch"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"github.com/google/wire"
	"go.uber.org/zap"
)

func provideConnector(
	cfg *config.Config, logger *zap.SugaredLogger,
) (
	ret interfaces.Connector, err error,
) {
	if cfg.Backend == config.BackendLocal {
		var c *localfs.Connector
		c, err = localfs.New(
			localfs.WithRoot(cfg.LocalRoot),
			localfs.WithLogger(logger),
		)
		if err != nil {
			return
		}

		ret = c
		return
	}

	var c *smb2conn.Connector
	c, err = smb2conn.New(
		smb2conn.WithPollInterval(cfg.PollInterval),
		smb2conn.WithLogger(logger),
	)
	if err != nil {
		return
	}

	ret = c
	return
}

func provideCollector() (*metrics.Collector, error) {
	return metrics.New()
}

func provideRecorder(c *metrics.Collector) interfaces.Recorder {
	return c
}

func provideBroadcaster(logger *zap.SugaredLogger) (*broadcast.Broadcaster, error) {
	return broadcast.New(broadcast.WithLogger(logger))
}

func provideEmitter(
	b *broadcast.Broadcaster,
) (
	ret interfaces.Emitter, err error,
) {
	var stdout *emitter.JSONLines
	stdout, err = emitter.NewJSONLines(os.Stdout)
	if err != nil {
		return
	}

	ret = emitter.Multi{stdout, b}
	return
}

func provideSMBWatch(
	cfg *config.Config,
	connector interfaces.Connector,
	e interfaces.Emitter,
	recorder interfaces.Recorder,
	logger *zap.SugaredLogger,
) (
	*smbwatch.SMBWatch, error,
) {
	return smbwatch.New(
		smbwatch.WithConfig(cfg),
		smbwatch.WithConnector(connector),
		smbwatch.WithEmitter(e),
		smbwatch.WithRecorder(recorder),
		smbwatch.WithLogger(logger),
	)
}

func provideServer(
	cfg *config.Config,
	w *smbwatch.SMBWatch,
	c *metrics.Collector,
	b *broadcast.Broadcaster,
	logger *zap.SugaredLogger,
) (
	*server.Server, error,
) {
	if cfg.Listen == "" {
		return nil, nil
	}

	return server.New(
		server.WithAddress(cfg.Listen),
		server.WithMetrics(c.Handler()),
		server.WithEvents(b),
		server.WithHealth(w.States),
		server.WithLogger(logger),
	)
}

func provideApp(
	w *smbwatch.SMBWatch,
	b *broadcast.Broadcaster,
	s *server.Server,
	logger *zap.SugaredLogger,
) *app {
	return &app{
		watch:       w,
		broadcaster: b,
		server:      s,
		log:         logger,
	}
}

var set = wire.NewSet(
	provideApp,
	provideBroadcaster,
	provideCollector,
	provideConnector,
	provideEmitter,
	provideRecorder,
	provideSMBWatch,
	provideServer,
)
