// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package interfaces

import (
	"context"

	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"github.com/black-desk/smbwatch/pkg/types"
)

// Connector establishes authenticated sessions with a file server.
type Connector interface {
	Connect(ctx context.Context, cred *config.Credentials) (Session, error)
}

type Session interface {
	OpenShare(ctx context.Context, name string) (Tree, error)
	Close() error
}

// Tree is an opened share.
type Tree interface {
	// WatchDirectory registers a change notification subscription on path.
	// The returned channel is closed after cancel is called,
	// or right after a notification carrying an error.
	WatchDirectory(ctx context.Context, path string, recursive bool) (
		notifications <-chan types.Notification, cancel CancelFunc, err error,
	)
	ListDirectory(ctx context.Context, path string) ([]types.DirEntry, error)
	Close() error
}

type CancelFunc func() error

// Closer releases a share and the session it was opened with.
// It is safe to call more than once.
type Closer func() error
