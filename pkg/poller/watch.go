// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package poller

import (
	"context"
	"sync"
	"time"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/types"
)

// Watch lists dir once to make sure it can be watched,
// then compares a new listing with the last one every interval.
//
// The channel is closed after cancel is called, after ctx is done,
// or right after a notification carrying a listing error.
func (p *Poller) Watch(ctx context.Context, dir string, recursive bool) (
	notifications <-chan types.Notification, cancel interfaces.CancelFunc, err error,
) {
	defer Wrap(&err, "watch %q by polling", dir)

	prev, err := p.scan(ctx, dir, recursive)
	if err != nil {
		return
	}

	ctx, stop := context.WithCancel(ctx)
	out := make(chan types.Notification)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(out)

		p.run(ctx, dir, recursive, prev, out)
	}()

	var once sync.Once
	cancel = func() error {
		once.Do(func() {
			stop()
			<-done
		})
		return nil
	}

	p.log.Debugw("Polling folder for changes.",
		"path", dir,
		"recursive", recursive,
		"interval", p.interval,
		"entries", len(prev),
	)

	notifications = out
	return
}

func (p *Poller) run(
	ctx context.Context, dir string, recursive bool,
	prev snapshot, out chan<- types.Notification,
) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		next, err := p.scan(ctx, dir, recursive)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			p.send(ctx, out, types.Notification{Err: err})
			return
		}

		records := diff(prev, next)
		prev = next

		if len(records) == 0 {
			continue
		}

		if !p.send(ctx, out, types.Notification{Records: records}) {
			return
		}
	}
}

func (p *Poller) send(ctx context.Context, out chan<- types.Notification, n types.Notification) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- n:
		return true
	}
}
