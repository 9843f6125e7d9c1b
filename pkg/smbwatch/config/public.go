// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/types"
)

// Request turns a configured watch into the request a subscription uses.
func (w *Watch) Request() (ret types.WatchRequest, err error) {
	defer Wrap(&err, "build watch request for %q", w.Folder)

	var kind types.EventKind
	kind, err = types.ParseEventKind(w.Event)
	if err != nil {
		return
	}

	ret = types.WatchRequest{
		Path:        w.Folder,
		Recursive:   w.Recursive,
		TargetEvent: kind,
	}
	return
}

func (c *Config) Requests() (ret []types.WatchRequest, err error) {
	for i := range c.Watches {
		var req types.WatchRequest
		req, err = c.Watches[i].Request()
		if err != nil {
			return
		}

		ret = append(ret, req)
	}
	return
}
