// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package poller turns repeated directory listings into change
// notifications, for servers that cannot push them.
package poller

import (
	"context"
	"errors"
	"time"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/types"
	"go.uber.org/zap"
)

var (
	ErrListerMissing   = errors.New("Lister is missing.")
	ErrLoggerMissing   = errors.New("Logger is missing.")
	ErrInvalidInterval = errors.New("Poll interval must be positive.")
)

const DefaultInterval = 2 * time.Second

type Lister interface {
	ListDirectory(ctx context.Context, path string) ([]types.DirEntry, error)
}

type Poller struct {
	lister         Lister
	interval       time.Duration
	requestTimeout time.Duration
	log            *zap.SugaredLogger
}

type Opt func(p *Poller) (ret *Poller, err error)

func New(opts ...Opt) (ret *Poller, err error) {
	defer Wrap(&err, "create directory poller")

	p := &Poller{interval: DefaultInterval}
	for i := range opts {
		p, err = opts[i](p)
		if err != nil {
			return
		}
	}

	if p.lister == nil {
		err = ErrListerMissing
		return
	}

	if p.log == nil {
		p.log = zap.NewNop().Sugar()
	}

	ret = p
	return
}

func WithLister(l Lister) Opt {
	return func(p *Poller) (ret *Poller, err error) {
		if l == nil {
			err = ErrListerMissing
			return
		}

		p.lister = l
		ret = p
		return
	}
}

func WithInterval(d time.Duration) Opt {
	return func(p *Poller) (ret *Poller, err error) {
		if d <= 0 {
			err = ErrInvalidInterval
			return
		}

		p.interval = d
		ret = p
		return
	}
}

// WithRequestTimeout bounds every single listing call.
// Zero means no bound.
func WithRequestTimeout(d time.Duration) Opt {
	return func(p *Poller) (ret *Poller, err error) {
		p.requestTimeout = d
		ret = p
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(p *Poller) (ret *Poller, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		p.log = log
		ret = p
		return
	}
}
