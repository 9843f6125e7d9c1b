// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package subman

import (
	"context"
	"errors"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/smberr"
	"github.com/black-desk/smbwatch/pkg/types"
)

func (m *SubscriptionManager) ID() string {
	return m.id
}

func (m *SubscriptionManager) Request() types.WatchRequest {
	return m.req
}

func (m *SubscriptionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Err returns the *smberr.SubscriptionError the watch failed with, if any.
func (m *SubscriptionManager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.err
}

// Done is closed once the subscription is closed or failed
// and everything it held has been released.
func (m *SubscriptionManager) Done() <-chan struct{} {
	return m.done
}

// Subscribe registers the watch on the tree.
// A registration failure releases the share and is returned as
// *smberr.SubscriptionError.
func (m *SubscriptionManager) Subscribe(ctx context.Context) (err error) {
	m.mu.Lock()
	if m.state != StateIdle {
		state := m.state
		m.mu.Unlock()

		if state.Terminal() || state == StateStopping {
			err = ErrStopped
			return
		}

		err = &ErrWrongState{Expected: StateIdle, Actual: state}
		return
	}
	m.setStateLocked(StateSubscribing)
	m.mu.Unlock()

	m.log.Debugw("Registering change notification.",
		"recursive", m.req.Recursive,
		"target", m.req.TargetEvent,
	)

	notifications, cancel, err := m.tree.WatchDirectory(ctx, m.req.Path, m.req.Recursive)
	if err != nil {
		err = m.fail(err)
		return
	}

	m.mu.Lock()
	m.notifications = notifications
	m.cancel = cancel

	if m.stopRequested() {
		m.setStateLocked(StateStopping)
		m.mu.Unlock()

		m.finish()
		err = ErrStopped
		return
	}

	m.setStateLocked(StateActive)
	m.mu.Unlock()

	m.log.Infow("Watching folder.",
		"recursive", m.req.Recursive,
		"target", m.req.TargetEvent,
	)
	return
}

// Run subscribes if that has not been done yet,
// then delivers matching events until Stop is called,
// ctx is done or the subscription breaks.
//
// It returns nil after Stop, ctx.Err() after ctx is done
// and *smberr.SubscriptionError if the watch failed.
// Everything is released before Run returns.
func (m *SubscriptionManager) Run(ctx context.Context) (err error) {
	defer Wrap(&err, "run subscription")

	if m.State() == StateIdle {
		err = m.Subscribe(ctx)
		if err != nil {
			if errors.Is(err, ErrStopped) {
				err = nil
			}
			return
		}
	}

	m.mu.Lock()
	if m.state != StateActive || m.running {
		state := m.state
		m.mu.Unlock()

		switch {
		case state == StateFailed:
			err = m.Err()
		case state.Terminal(), state == StateStopping:
		default:
			err = &ErrWrongState{Expected: StateActive, Actual: state}
		}
		return
	}
	m.running = true
	notifications := m.notifications
	m.mu.Unlock()

	return m.loop(ctx, notifications)
}

// Stop ends the watch. A notification being handled is finished first,
// then the subscription is cancelled and the share is released.
// Both are attempted even if one of them fails.
//
// Only the first call can return an error; later calls are no-op.
func (m *SubscriptionManager) Stop() (err error) {
	first := false
	m.stopOnce.Do(func() {
		first = true
		close(m.stopCh)
	})

	if !first {
		<-m.done
		return
	}

	m.log.Debugw("Stop requested.")

	m.mu.Lock()
	switch {
	case m.state == StateIdle,
		m.state == StateActive && !m.running:
		m.setStateLocked(StateStopping)
		m.mu.Unlock()
		m.finish()
	default:
		m.mu.Unlock()
	}

	<-m.done

	if m.State() == StateFailed {
		return
	}

	err = m.releaseErr
	if err != nil {
		err = smberr.NewSubscriptionError(m.req.Path, err)
	}
	return
}
