// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"github.com/black-desk/smbwatch/pkg/types"
	"go.uber.org/zap"
)

// Connect checks that the root exists. Credentials are not used.
func (c *Connector) Connect(ctx context.Context, cred *config.Credentials) (
	ret interfaces.Session, err error,
) {
	err = isDir(c.root)
	if err != nil {
		return
	}

	ret = &session{root: c.root, log: c.log}
	return
}

func isDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}

	return nil
}

// within joins rel to base and makes sure the result stays under base.
func within(base, rel string) (ret string, err error) {
	ret = filepath.Join(base, filepath.FromSlash(rel))
	if ret != base && !strings.HasPrefix(ret, base+string(filepath.Separator)) {
		err = fmt.Errorf("%q: %w", rel, ErrOutsideShare)
	}
	return
}

type session struct {
	root string
	log  *zap.SugaredLogger
}

func (s *session) OpenShare(ctx context.Context, name string) (ret interfaces.Tree, err error) {
	dir, err := within(s.root, name)
	if err != nil {
		return
	}

	err = isDir(dir)
	if err != nil {
		return
	}

	ret = &tree{dir: dir, log: s.log.With("share", name)}
	return
}

func (s *session) Close() error {
	return nil
}

type tree struct {
	dir string
	log *zap.SugaredLogger
}

var _ interfaces.Tree = (*tree)(nil)

func (t *tree) ListDirectory(ctx context.Context, path string) (ret []types.DirEntry, err error) {
	dir, err := within(t.dir, path)
	if err != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	ret = make([]types.DirEntry, 0, len(entries))
	for _, e := range entries {
		entry := types.DirEntry{Name: e.Name()}
		if e.IsDir() {
			entry.Attributes |= types.FileAttributeDirectory
		}

		info, infoErr := e.Info()
		if infoErr == nil {
			entry.Size = info.Size()
			entry.ModTime = info.ModTime()
		}

		ret = append(ret, entry)
	}

	return
}

func (t *tree) Close() error {
	return nil
}
