// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smbwatch

import (
	"context"

	"github.com/black-desk/smbwatch/pkg/subman"
	"github.com/black-desk/smbwatch/pkg/types"
)

// Handle is one started watch.
type Handle struct {
	m *subman.SubscriptionManager
}

func (h *Handle) ID() string {
	return h.m.ID()
}

func (h *Handle) Request() types.WatchRequest {
	return h.m.Request()
}

// Run delivers events until Stop is called, ctx is done or the watch fails.
func (h *Handle) Run(ctx context.Context) error {
	return h.m.Run(ctx)
}

// Stop ends the watch and releases its session.
// Calling it again does nothing.
func (h *Handle) Stop() error {
	return h.m.Stop()
}

func (h *Handle) State() subman.State {
	return h.m.State()
}

func (h *Handle) Err() error {
	return h.m.Err()
}

func (h *Handle) Done() <-chan struct{} {
	return h.m.Done()
}
