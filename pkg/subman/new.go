// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package subman

import (
	"sync"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/types"
	"go.uber.org/zap"
)

// SubscriptionManager owns one change notification subscription
// on an opened share, from registration to release.
type SubscriptionManager struct {
	id  string
	req types.WatchRequest

	tree       interfaces.Tree
	closer     interfaces.Closer
	classifier interfaces.Classifier
	emitter    interfaces.Emitter
	recorder   interfaces.Recorder
	log        *zap.SugaredLogger

	mu            sync.Mutex
	state         State
	running       bool
	err           error
	notifications <-chan types.Notification
	cancel        interfaces.CancelFunc

	stopOnce sync.Once
	stopCh   chan struct{}

	releaseOnce sync.Once
	releaseErr  error

	doneOnce sync.Once
	done     chan struct{}
}

type Opt func(m *SubscriptionManager) (ret *SubscriptionManager, err error)

func New(opts ...Opt) (ret *SubscriptionManager, err error) {
	defer Wrap(&err, "create subscription manager")

	m := &SubscriptionManager{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}

	for i := range opts {
		m, err = opts[i](m)
		if err != nil {
			return
		}
	}

	if m.tree == nil {
		err = ErrTreeMissing
		return
	}

	if m.classifier == nil {
		err = ErrClassifierMissing
		return
	}

	if m.emitter == nil {
		err = ErrEmitterMissing
		return
	}

	if !m.req.TargetEvent.Valid() {
		err = &ErrInvalidTarget{Target: m.req.TargetEvent}
		return
	}

	if m.log == nil {
		m.log = zap.NewNop().Sugar()
	}

	if m.recorder == nil {
		m.recorder = nopRecorder{}
	}

	m.log = m.log.With("watch", m.id, "path", m.req.Path)

	ret = m
	return
}

// WithID names the watch in logs, metrics and emitted events.
func WithID(id string) Opt {
	return func(m *SubscriptionManager) (ret *SubscriptionManager, err error) {
		m.id = id
		ret = m
		return
	}
}

func WithRequest(req types.WatchRequest) Opt {
	return func(m *SubscriptionManager) (ret *SubscriptionManager, err error) {
		if !req.TargetEvent.Valid() {
			err = &ErrInvalidTarget{Target: req.TargetEvent}
			return
		}

		m.req = req
		ret = m
		return
	}
}

func WithTree(tree interfaces.Tree) Opt {
	return func(m *SubscriptionManager) (ret *SubscriptionManager, err error) {
		if tree == nil {
			err = ErrTreeMissing
			return
		}

		m.tree = tree
		ret = m
		return
	}
}

// WithCloser sets what releases the share and session after the
// subscription is cancelled.
func WithCloser(closer interfaces.Closer) Opt {
	return func(m *SubscriptionManager) (ret *SubscriptionManager, err error) {
		m.closer = closer
		ret = m
		return
	}
}

func WithClassifier(c interfaces.Classifier) Opt {
	return func(m *SubscriptionManager) (ret *SubscriptionManager, err error) {
		if c == nil {
			err = ErrClassifierMissing
			return
		}

		m.classifier = c
		ret = m
		return
	}
}

func WithEmitter(e interfaces.Emitter) Opt {
	return func(m *SubscriptionManager) (ret *SubscriptionManager, err error) {
		if e == nil {
			err = ErrEmitterMissing
			return
		}

		m.emitter = e
		ret = m
		return
	}
}

func WithRecorder(r interfaces.Recorder) Opt {
	return func(m *SubscriptionManager) (ret *SubscriptionManager, err error) {
		if r == nil {
			err = ErrRecorderMissing
			return
		}

		m.recorder = r
		ret = m
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(m *SubscriptionManager) (ret *SubscriptionManager, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		m.log = log
		ret = m
		return
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordNotification(string, int) {}
func (nopRecorder) RecordDropped(string, types.Action) {}
func (nopRecorder) RecordClassified(string, types.ActionClass, types.EntryType) {}
func (nopRecorder) RecordEmitted(string, types.EventKind) {}
func (nopRecorder) RecordEmitFailed(string) {}
func (nopRecorder) RecordState(string, string) {}
