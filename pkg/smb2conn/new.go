// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package smb2conn connects to SMB2/3 servers with go-smb2.
//
// go-smb2 has no CHANGE_NOTIFY request, so directory watches are
// served by polling listings, see package poller.
package smb2conn

import (
	"context"
	"net"
	"time"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/poller"
	"go.uber.org/zap"
)

type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

type Connector struct {
	pollInterval time.Duration
	dial         DialFunc
	log          *zap.SugaredLogger
}

var _ interfaces.Connector = (*Connector)(nil)

type Opt func(c *Connector) (ret *Connector, err error)

func New(opts ...Opt) (ret *Connector, err error) {
	defer Wrap(&err, "create smb2 connector")

	c := &Connector{
		pollInterval: poller.DefaultInterval,
		dial:         (&net.Dialer{}).DialContext,
	}

	for i := range opts {
		c, err = opts[i](c)
		if err != nil {
			return
		}
	}

	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}

	ret = c
	return
}

func WithPollInterval(d time.Duration) Opt {
	return func(c *Connector) (ret *Connector, err error) {
		if d <= 0 {
			err = poller.ErrInvalidInterval
			return
		}

		c.pollInterval = d
		ret = c
		return
	}
}

// WithDialer replaces the TCP dialer, mostly for tests.
func WithDialer(dial DialFunc) Opt {
	return func(c *Connector) (ret *Connector, err error) {
		if dial != nil {
			c.dial = dial
		}
		ret = c
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(c *Connector) (ret *Connector, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		c.log = log
		ret = c
		return
	}
}
