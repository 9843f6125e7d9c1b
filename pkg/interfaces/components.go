// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package interfaces

import (
	"context"

	"github.com/black-desk/smbwatch/pkg/types"
)

type Emitter interface {
	Emit(ctx context.Context, event *types.Event) error
}

type Resolver interface {
	Resolve(ctx context.Context, tree Tree, path, filename string) types.EntryType
}

type Classifier interface {
	Classify(
		ctx context.Context, record *types.RawChangeRecord, tree Tree, path string,
	) (
		event types.ClassifiedEvent, ok bool,
	)
}

type SessionManager interface {
	Open(ctx context.Context) (Tree, Closer, error)
}

// Recorder observes what happens to raw records of a watch.
type Recorder interface {
	RecordNotification(watch string, records int)
	RecordDropped(watch string, action types.Action)
	RecordClassified(watch string, class types.ActionClass, entry types.EntryType)
	RecordEmitted(watch string, kind types.EventKind)
	RecordEmitFailed(watch string)
	RecordState(watch string, state string)
}
