// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package localfs serves shares from sub directories of a local folder,
// with change notifications from the operating system.
package localfs

import (
	"errors"
	"path/filepath"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"go.uber.org/zap"
)

var (
	ErrRootMissing   = errors.New("Root directory is missing.")
	ErrLoggerMissing = errors.New("Logger is missing.")
	ErrOutsideShare  = errors.New("path points outside of the share")
	ErrNotDirectory  = errors.New("not a directory")
)

type Connector struct {
	root string
	log  *zap.SugaredLogger
}

var _ interfaces.Connector = (*Connector)(nil)

type Opt func(c *Connector) (ret *Connector, err error)

func New(opts ...Opt) (ret *Connector, err error) {
	defer Wrap(&err, "create local filesystem connector")

	c := &Connector{}
	for i := range opts {
		c, err = opts[i](c)
		if err != nil {
			return
		}
	}

	if c.root == "" {
		err = ErrRootMissing
		return
	}

	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}

	ret = c
	return
}

func WithRoot(root string) Opt {
	return func(c *Connector) (ret *Connector, err error) {
		if root == "" {
			err = ErrRootMissing
			return
		}

		c.root, err = filepath.Abs(root)
		if err != nil {
			return
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
