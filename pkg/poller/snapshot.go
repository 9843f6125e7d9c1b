// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package poller

import (
	"context"
	"path"
	"slices"
	"time"

	"github.com/black-desk/smbwatch/pkg/types"
)

type entryState struct {
	dir     bool
	size    int64
	modTime time.Time
}

// snapshot maps names relative to the watched folder,
// joined with "/", to what the listing said about them.
type snapshot map[string]entryState

func (p *Poller) list(ctx context.Context, dir string) ([]types.DirEntry, error) {
	if p.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.requestTimeout)
		defer cancel()
	}

	return p.lister.ListDirectory(ctx, dir)
}

// scan lists root, and every folder under it if recursive.
// Only a failure to list root is an error;
// sub folders may vanish between two listings.
func (p *Poller) scan(ctx context.Context, root string, recursive bool) (ret snapshot, err error) {
	ret = snapshot{}

	queue := []string{""}
	for len(queue) > 0 {
		rel := queue[0]
		queue = queue[1:]

		var entries []types.DirEntry
		entries, err = p.list(ctx, joinPath(root, rel))
		if err != nil {
			if rel == "" {
				ret = nil
				return
			}

			p.log.Debugw("Failed to list sub folder, skip it.",
				"path", joinPath(root, rel),
				"error", err,
			)
			err = nil
			continue
		}

		for i := range entries {
			if entries[i].Name == "." || entries[i].Name == ".." {
				continue
			}

			name := joinPath(rel, entries[i].Name)
			ret[name] = entryState{
				dir:     entries[i].IsDir(),
				size:    entries[i].Size,
				modTime: entries[i].ModTime,
			}

			if recursive && entries[i].IsDir() {
				queue = append(queue, name)
			}
		}
	}

	return
}

func joinPath(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return path.Join(dir, name)
}

// diff reports what changed from prev to next.
// Removals come first, then additions, then modifications,
// each sorted by name. An entry that turned from a file into a folder
// or back is reported as removed and added.
func diff(prev, next snapshot) (ret []types.RawChangeRecord) {
	var removed, added, modified []string

	for name, old := range prev {
		cur, ok := next[name]
		switch {
		case !ok:
			removed = append(removed, name)
		case cur.dir != old.dir:
			removed = append(removed, name)
			added = append(added, name)
		case !cur.modTime.Equal(old.modTime),
			!cur.dir && cur.size != old.size:
			modified = append(modified, name)
		}
	}

	for name := range next {
		if _, ok := prev[name]; !ok {
			added = append(added, name)
		}
	}

	for _, group := range []struct {
		action types.Action
		names  []string
	}{
		{types.ActionRemoved, removed},
		{types.ActionAdded, added},
		{types.ActionModified, modified},
	} {
		slices.Sort(group.names)
		for _, name := range group.names {
			ret = append(ret, types.RawChangeRecord{
				Action:   group.action,
				Filename: name,
			})
		}
	}

	return
}
