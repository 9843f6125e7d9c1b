// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package resolver finds out whether a changed entry is a file or a folder
// by listing the folder that contains it.
package resolver

import (
	"context"
	"errors"
	"path"
	"strings"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/types"
	"go.uber.org/zap"
)

var ErrLoggerMissing = errors.New("Logger is missing.")

type Resolver struct {
	log *zap.SugaredLogger
}

var _ interfaces.Resolver = (*Resolver)(nil)

type Opt func(r *Resolver) (ret *Resolver, err error)

func New(opts ...Opt) (ret *Resolver, err error) {
	defer Wrap(&err, "create type resolver")

	r := &Resolver{}
	for i := range opts {
		r, err = opts[i](r)
		if err != nil {
			return
		}
	}

	if r.log == nil {
		r.log = zap.NewNop().Sugar()
	}

	ret = r
	return
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(r *Resolver) (ret *Resolver, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		r.log = log
		ret = r
		return
	}
}

// Resolve lists the folder holding filename and looks for an entry
// named exactly like it. filename may be nested below dir, as recursive
// watches report it; both "/" and `\` separate its elements.
// It never fails: a listing error or a missing entry give
// types.EntryTypeUnknown.
func (r *Resolver) Resolve(
	ctx context.Context, tree interfaces.Tree, dir, filename string,
) types.EntryType {
	parent, name := split(dir, filename)

	entries, err := tree.ListDirectory(ctx, parent)
	if err != nil {
		r.log.Debugw("Failed to list directory, entry type is unknown.",
			"path", parent,
			"filename", name,
			"error", err,
		)
		return types.EntryTypeUnknown
	}

	for i := range entries {
		if entries[i].Name != name {
			continue
		}

		if entries[i].IsDir() {
			return types.EntryTypeDirectory
		}
		return types.EntryTypeFile
	}

	r.log.Debugw("Entry not found in directory listing, entry type is unknown.",
		"path", parent,
		"filename", name,
		"entries", len(entries),
	)
	return types.EntryTypeUnknown
}

// split turns a possibly nested filename reported for dir
// into the folder to list and the name to look for in it.
func split(dir, filename string) (parent, name string) {
	filename = strings.ReplaceAll(filename, "\\", "/")

	sub, name := path.Split(filename)
	if sub == "" {
		return dir, name
	}

	return path.Join(dir, sub), name
}
