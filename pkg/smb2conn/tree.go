// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smb2conn

import (
	"context"
	"strings"
	"time"

	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/poller"
	"github.com/black-desk/smbwatch/pkg/types"
	"github.com/hirochachacha/go-smb2"
	"go.uber.org/zap"
)

type tree struct {
	share          *smb2.Share
	requestTimeout time.Duration
	poller         *poller.Poller
	log            *zap.SugaredLogger
}

var _ interfaces.Tree = (*tree)(nil)

func newPoller(
	l poller.Lister, interval, timeout time.Duration, log *zap.SugaredLogger,
) (*poller.Poller, error) {
	return poller.New(
		poller.WithLister(l),
		poller.WithInterval(interval),
		poller.WithRequestTimeout(timeout),
		poller.WithLogger(log),
	)
}

// sharePath turns a folder relative to the share root
// into the form go-smb2 expects.
func sharePath(p string) string {
	p = strings.Trim(p, `/\`)
	if p == "." {
		return ""
	}
	return p
}

func (t *tree) ListDirectory(ctx context.Context, path string) (ret []types.DirEntry, err error) {
	ctx, cancel := withTimeout(ctx, t.requestTimeout)
	defer cancel()

	infos, err := t.share.WithContext(ctx).ReadDir(sharePath(path))
	if err != nil {
		err = statusError(err)
		return
	}

	ret = make([]types.DirEntry, 0, len(infos))
	for _, info := range infos {
		entry := types.DirEntry{
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if info.IsDir() {
			entry.Attributes |= types.FileAttributeDirectory
		}

		ret = append(ret, entry)
	}

	return
}

func (t *tree) WatchDirectory(ctx context.Context, path string, recursive bool) (
	<-chan types.Notification, interfaces.CancelFunc, error,
) {
	return t.poller.Watch(ctx, sharePath(path), recursive)
}

func (t *tree) Close() error {
	err := t.share.Umount()
	if err != nil {
		return statusError(err)
	}
	return nil
}
