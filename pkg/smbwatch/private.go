// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smbwatch

import (
	"context"

	"github.com/black-desk/smbwatch/pkg/classifier"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/resolver"
	"github.com/black-desk/smbwatch/pkg/sessman"
	"github.com/black-desk/smbwatch/pkg/subman"
	"github.com/black-desk/smbwatch/pkg/types"
)

func (w *SMBWatch) newSubscription(
	ctx context.Context, id string,
	req types.WatchRequest, emitter interfaces.Emitter,
) (
	ret *subman.SubscriptionManager, err error,
) {
	log := w.log.With("watch", id)

	sm, err := sessman.New(
		sessman.WithConnector(w.connector),
		sessman.WithCredentials(w.cfg.Credentials),
		sessman.WithLogger(log),
	)
	if err != nil {
		return
	}

	r, err := resolver.New(resolver.WithLogger(log))
	if err != nil {
		return
	}

	c, err := classifier.New(
		classifier.WithResolver(r),
		classifier.WithLogger(log),
	)
	if err != nil {
		return
	}

	tree, closer, err := sm.Open(ctx)
	if err != nil {
		return
	}

	opts := []subman.Opt{
		subman.WithID(id),
		subman.WithRequest(req),
		subman.WithTree(tree),
		subman.WithCloser(closer),
		subman.WithClassifier(c),
		subman.WithEmitter(emitter),
		subman.WithLogger(log),
	}
	if w.recorder != nil {
		opts = append(opts, subman.WithRecorder(w.recorder))
	}

	ret, err = subman.New(opts...)
	if err != nil {
		_ = closer()
		return
	}

	return
}

func (w *SMBWatch) runWatch(ctx context.Context, req types.WatchRequest) (err error) {
	h, err := w.Watch(ctx, req, w.emitter)
	if err != nil {
		w.log.Errorw("Failed to start watch.",
			"path", req.Path,
			"event", req.TargetEvent,
			"error", err,
		)
		return
	}

	defer w.log.Debugw("Watch exited.", "watch", h.ID())

	w.log.Debugw("Start watch.",
		"watch", h.ID(),
		"path", req.Path,
		"event", req.TargetEvent,
	)

	err = h.Run(ctx)
	if err != nil {
		return
	}

	return ctx.Err()
}
