// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package localfs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/types"
	"github.com/rjeczalik/notify"
)

// WatchDirectory turns filesystem events under path into one
// notification each, with the action codes a file server would use.
func (t *tree) WatchDirectory(ctx context.Context, path string, recursive bool) (
	notifications <-chan types.Notification, cancel interfaces.CancelFunc, err error,
) {
	defer Wrap(&err, "watch %q", path)

	dir, err := within(t.dir, path)
	if err != nil {
		return
	}

	err = isDir(dir)
	if err != nil {
		return
	}

	// NOTE: Events carry resolved paths.
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		return
	}

	// FIXME:
	// github.com/rjeczalik/notify drop events if receiver is too slow.
	// https://github.com/rjeczalik/notify/issues/85
	eventsIn := make(chan notify.EventInfo, 20)

	target := dir
	if recursive {
		target = filepath.Join(dir, "...")
	}

	err = notify.Watch(target, eventsIn,
		notify.Create, notify.Remove, notify.Write, notify.Rename)
	if err != nil {
		return
	}

	ctx, stop := context.WithCancel(ctx)
	out := make(chan types.Notification)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(out)
		defer notify.Stop(eventsIn)

		t.forward(ctx, dir, eventsIn, out)
	}()

	var once sync.Once
	cancel = func() error {
		once.Do(func() {
			stop()
			<-done
		})
		return nil
	}

	t.log.Debugw("Watching local folder.",
		"path", dir,
		"recursive", recursive,
	)

	notifications = out
	return
}

func (t *tree) forward(
	ctx context.Context, dir string,
	eventsIn <-chan notify.EventInfo, out chan<- types.Notification,
) {
	for {
		var ev notify.EventInfo
		select {
		case <-ctx.Done():
			return
		case ev = <-eventsIn:
		}

		rel, err := filepath.Rel(dir, ev.Path())
		if err != nil || rel == "." {
			continue
		}

		record := types.RawChangeRecord{
			Action:   action(ev),
			Filename: filepath.ToSlash(rel),
		}

		t.log.Debugw("Filesystem event.",
			"event", ev.Event(),
			"path", ev.Path(),
			"action", record.Action,
		)

		select {
		case <-ctx.Done():
			return
		case out <- types.Notification{Records: []types.RawChangeRecord{record}}:
		}
	}
}

func action(ev notify.EventInfo) types.Action {
	switch ev.Event() {
	case notify.Create:
		return types.ActionAdded
	case notify.Remove:
		return types.ActionRemoved
	case notify.Write:
		return types.ActionModified
	case notify.Rename:
		_, err := os.Lstat(ev.Path())
		if errors.Is(err, fs.ErrNotExist) {
			return types.ActionRenamedOldName
		}
		return types.ActionRenamedNewName
	default:
		return 0
	}
}
