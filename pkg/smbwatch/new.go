// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package smbwatch watches folders of a file share and emits
// the changes each watch asked for.
package smbwatch

import (
	"sync"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"go.uber.org/zap"
)

type SMBWatch struct {
	cfg *config.Config

	connector interfaces.Connector
	emitter   interfaces.Emitter
	recorder  interfaces.Recorder
	log       *zap.SugaredLogger

	mu      sync.Mutex
	handles map[string]*Handle
}

type Opt = (func(*SMBWatch) (*SMBWatch, error))

func New(opts ...Opt) (ret *SMBWatch, err error) {
	defer Wrap(&err, "create smbwatch")

	w := &SMBWatch{handles: map[string]*Handle{}}
	for i := range opts {
		w, err = opts[i](w)
		if err != nil {
			w = nil
			return
		}
	}

	if w.log == nil {
		w.log = zap.NewNop().Sugar()
	}

	if w.cfg == nil {
		err = ErrConfigMissing
		return
	}

	if w.connector == nil {
		err = ErrConnectorMissing
		return
	}

	ret = w

	w.log.Debugw("Create smbwatch.",
		"configuration", w.cfg,
	)

	return
}

func WithConfig(cfg *config.Config) Opt {
	return func(w *SMBWatch) (ret *SMBWatch, err error) {
		if cfg == nil {
			err = ErrConfigMissing
			return
		}

		w.cfg = cfg
		ret = w
		return
	}
}

func WithConnector(c interfaces.Connector) Opt {
	return func(w *SMBWatch) (ret *SMBWatch, err error) {
		if c == nil {
			err = ErrConnectorMissing
			return
		}

		w.connector = c
		ret = w
		return
	}
}

// WithEmitter sets where Run delivers events.
func WithEmitter(e interfaces.Emitter) Opt {
	return func(w *SMBWatch) (ret *SMBWatch, err error) {
		if e == nil {
			err = ErrEmitterMissing
			return
		}

		w.emitter = e
		ret = w
		return
	}
}

func WithRecorder(r interfaces.Recorder) Opt {
	return func(w *SMBWatch) (ret *SMBWatch, err error) {
		if r == nil {
			err = ErrRecorderMissing
			return
		}

		w.recorder = r
		ret = w
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(w *SMBWatch) (ret *SMBWatch, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		w.log = log
		ret = w
		return
	}
}
