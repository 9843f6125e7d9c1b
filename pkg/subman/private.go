// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package subman

import (
	"context"
	"errors"

	"github.com/black-desk/smbwatch/pkg/classifier"
	"github.com/black-desk/smbwatch/pkg/smberr"
	"github.com/black-desk/smbwatch/pkg/types"
)

func (m *SubscriptionManager) loop(
	ctx context.Context, notifications <-chan types.Notification,
) (err error) {
	defer m.log.Debugw("Subscription loop exited.")

	for {
		select {
		case <-m.stopCh:
			m.stopping()
			return nil
		case <-ctx.Done():
			m.stopping()
			return ctx.Err()
		case n, ok := <-notifications:
			if m.stopRequested() {
				m.stopping()
				return nil
			}

			if !ok {
				if ctx.Err() != nil {
					m.stopping()
					return ctx.Err()
				}
				return m.fail(ErrNotificationsClosed)
			}

			if n.Err != nil {
				return m.fail(n.Err)
			}

			m.handle(ctx, &n)
		}
	}
}

// handle runs every record of one notification through the classifier
// in delivery order, and emits the ones the watch asked for.
func (m *SubscriptionManager) handle(ctx context.Context, n *types.Notification) {
	m.log.Debugw("Notification received.",
		"records", n.Records,
	)
	m.recorder.RecordNotification(m.id, len(n.Records))

	for i := range n.Records {
		record := &n.Records[i]

		ev, ok := m.classifier.Classify(ctx, record, m.tree, m.req.Path)
		if !ok {
			m.recorder.RecordDropped(m.id, record.Action)
			continue
		}
		m.recorder.RecordClassified(m.id, ev.Class, ev.Type)

		if !classifier.Match(&ev, m.req.TargetEvent) {
			continue
		}

		event := &types.Event{
			Event:       m.req.TargetEvent,
			Action:      ev.Action,
			ActionName:  ev.Action.String(),
			Filename:    ev.Filename,
			Path:        ev.Path,
			IsDirectory: ev.Type,
			Watch:       m.id,
		}

		err := m.emitter.Emit(ctx, event)
		if err != nil {
			m.recorder.RecordEmitFailed(m.id)
			m.log.Errorw("Failed to emit event.",
				"event", event.Event,
				"filename", event.Filename,
				"error", err,
			)

			if ctx.Err() != nil {
				return
			}
			continue
		}

		m.recorder.RecordEmitted(m.id, event.Event)
		m.log.Debugw("Event emitted.",
			"event", event.Event,
			"action", event.ActionName,
			"filename", event.Filename,
			"isDirectory", event.IsDirectory,
		)
	}
}

func (m *SubscriptionManager) stopRequested() bool {
	select {
	case <-m.stopCh:
		return true
	default:
		return false
	}
}

func (m *SubscriptionManager) stopping() {
	m.setState(StateStopping)
	m.finish()
}

// finish releases everything and moves to closed.
func (m *SubscriptionManager) finish() {
	m.release()
	m.setState(StateClosed)
	m.log.Infow("Watch closed.")
	m.doneOnce.Do(func() { close(m.done) })
}

// fail releases everything and moves to failed,
// recording cause as the one error of this watch.
func (m *SubscriptionManager) fail(cause error) error {
	err := smberr.NewSubscriptionError(m.req.Path, cause)

	m.log.Errorw("Watch failed.",
		"error", err,
		"cause", cause,
	)

	m.release()

	m.mu.Lock()
	m.err = err
	m.setStateLocked(StateFailed)
	m.mu.Unlock()

	m.doneOnce.Do(func() { close(m.done) })
	return err
}

func (m *SubscriptionManager) release() {
	m.releaseOnce.Do(func() {
		var cancelErr, closeErr error

		m.mu.Lock()
		cancel := m.cancel
		m.mu.Unlock()

		if cancel != nil {
			cancelErr = cancel()
			if cancelErr != nil {
				m.log.Warnw("Failed to cancel change notification.",
					"error", cancelErr,
				)
			}
		}

		if m.closer != nil {
			closeErr = m.closer()
			if closeErr != nil {
				m.log.Warnw("Failed to release share.",
					"error", closeErr,
				)
			}
		}

		m.releaseErr = errors.Join(cancelErr, closeErr)
	})
}

func (m *SubscriptionManager) setState(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setStateLocked(state)
}

func (m *SubscriptionManager) setStateLocked(state State) {
	if m.state == state {
		return
	}

	m.log.Debugw("Subscription state changed.",
		"from", m.state,
		"to", state,
	)
	m.state = state
	m.recorder.RecordState(m.id, state.String())
}
