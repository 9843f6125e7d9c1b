// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smbwatch

import (
	"context"
	"maps"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/subman"
	"github.com/black-desk/smbwatch/pkg/types"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
)

// Watch opens a session of its own for req and registers the watch.
// Connect failures are *smberr.ConnectError, registration failures
// *smberr.SubscriptionError; nothing is left open in either case.
// Events go to emitter once the returned handle runs.
func (w *SMBWatch) Watch(
	ctx context.Context, req types.WatchRequest, emitter interfaces.Emitter,
) (
	ret *Handle, err error,
) {
	id := uuid.NewString()
	log := w.log.With("watch", id)

	m, err := w.newSubscription(ctx, id, req, emitter)
	if err != nil {
		return
	}

	err = m.Subscribe(ctx)
	if err != nil {
		return
	}

	ret = &Handle{m: m}

	w.mu.Lock()
	w.handles[id] = ret
	w.mu.Unlock()

	go func() {
		<-ret.Done()

		if ret.State() == subman.StateFailed {
			log.Debugw("Watch failed, keep it for health reports.")
			return
		}

		w.mu.Lock()
		delete(w.handles, id)
		w.mu.Unlock()

		log.Debugw("Watch removed.")
	}()

	return
}

// Run starts every configured watch and waits for all of them.
// A failing watch does not stop the others.
func (w *SMBWatch) Run(ctx context.Context) (err error) {
	defer Wrap(&err, "running smbwatch")

	if w.emitter == nil {
		err = ErrEmitterMissing
		return
	}

	reqs, err := w.cfg.Requests()
	if err != nil {
		return
	}

	p := pool.New().
		WithErrors().
		WithContext(ctx)

	for i := range reqs {
		req := reqs[i]
		p.Go(func(ctx context.Context) error {
			return w.runWatch(ctx, req)
		})
	}

	return p.Wait()
}

// States reports the state of every watch by id.
// Stopped watches are left out; failed ones stay.
func (w *SMBWatch) States() map[string]string {
	w.mu.Lock()
	handles := maps.Clone(w.handles)
	w.mu.Unlock()

	ret := make(map[string]string, len(handles))
	for id, h := range handles {
		ret[id] = h.State().String()
	}
	return ret
}
