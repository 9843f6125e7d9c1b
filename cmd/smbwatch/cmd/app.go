// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/broadcast"
	"github.com/black-desk/smbwatch/pkg/server"
	"github.com/black-desk/smbwatch/pkg/smbwatch"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type app struct {
	watch       *smbwatch.SMBWatch
	broadcaster *broadcast.Broadcaster
	// server is nil when nothing should be served.
	server *server.Server
	log    *zap.SugaredLogger
}

func (a *app) Run(ctx context.Context) (err error) {
	defer Wrap(&err, "run smbwatch")

	defer func() {
		_ = a.broadcaster.Close()
	}()

	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(a.watch.Run)

	if a.server != nil {
		p.Go(a.server.Run)
	} else {
		a.log.Debugw("No listen address, HTTP server disabled.")
	}

	return p.Wait()
}
