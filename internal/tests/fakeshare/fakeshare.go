// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fakeshare is an in-memory file server for tests.
package fakeshare

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"github.com/black-desk/smbwatch/pkg/types"
)

// Server hands out sessions that all open the same Tree.
type Server struct {
	ConnectErr error
	OpenErr    error
	Tree       *Tree

	Connects      atomic.Int32
	SessionCloses atomic.Int32

	mu    sync.Mutex
	creds []config.Credentials
}

var _ interfaces.Connector = (*Server)(nil)

func NewServer() *Server {
	return &Server{Tree: NewTree()}
}

func (s *Server) Connect(ctx context.Context, cred *config.Credentials) (interfaces.Session, error) {
	s.Connects.Add(1)

	s.mu.Lock()
	s.creds = append(s.creds, *cred)
	s.mu.Unlock()

	if s.ConnectErr != nil {
		return nil, s.ConnectErr
	}

	return &session{server: s}, nil
}

// Credentials returns what every Connect call was given.
func (s *Server) Credentials() []config.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]config.Credentials(nil), s.creds...)
}

type session struct {
	server *Server
}

func (s *session) OpenShare(ctx context.Context, name string) (interfaces.Tree, error) {
	if s.server.OpenErr != nil {
		return nil, s.server.OpenErr
	}

	return s.server.Tree, nil
}

func (s *session) Close() error {
	s.server.SessionCloses.Add(1)
	return nil
}

// Tree serves directory listings from memory
// and lets tests push notifications into watches.
type Tree struct {
	WatchErr  error
	CancelErr error
	CloseErr  error

	Lists  atomic.Int32
	Closes atomic.Int32

	mu       sync.Mutex
	listings map[string][]types.DirEntry
	listErrs map[string]error
	watches  []*Watch
	watched  chan *Watch
}

var _ interfaces.Tree = (*Tree)(nil)

func NewTree() *Tree {
	return &Tree{
		listings: map[string][]types.DirEntry{},
		listErrs: map[string]error{},
		watched:  make(chan *Watch, 16),
	}
}

// AddFile puts a regular file named name into the listing of dir.
func (t *Tree) AddFile(dir, name string) {
	t.add(dir, types.DirEntry{Name: name})
}

func (t *Tree) AddFolder(dir, name string) {
	t.add(dir, types.DirEntry{
		Name:       name,
		Attributes: types.FileAttributeDirectory,
	})
}

func (t *Tree) add(dir string, entry types.DirEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.listings[dir] = append(t.listings[dir], entry)
}

// Put adds entry to the listing of dir, replacing an entry of the same name.
func (t *Tree) Put(dir string, entry types.DirEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.listings[dir]
	for i := range entries {
		if entries[i].Name == entry.Name {
			entries[i] = entry
			return
		}
	}
	t.listings[dir] = append(entries, entry)
}

// SetListing replaces the whole listing of dir at once.
func (t *Tree) SetListing(dir string, entries ...types.DirEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.listings[dir] = entries
}

func (t *Tree) Remove(dir, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.listings[dir] = slices.DeleteFunc(t.listings[dir], func(e types.DirEntry) bool {
		return e.Name == name
	})
}

// FailList makes every listing of dir fail with err.
// A nil err makes listings work again.
func (t *Tree) FailList(dir string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.listErrs[dir] = err
}

func (t *Tree) ListDirectory(ctx context.Context, path string) ([]types.DirEntry, error) {
	t.Lists.Add(1)

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.listErrs[path]; err != nil {
		return nil, err
	}

	return append([]types.DirEntry(nil), t.listings[path]...), nil
}

func (t *Tree) WatchDirectory(ctx context.Context, path string, recursive bool) (
	<-chan types.Notification, interfaces.CancelFunc, error,
) {
	if t.WatchErr != nil {
		return nil, nil, t.WatchErr
	}

	w := &Watch{
		Path:      path,
		Recursive: recursive,
		ch:        make(chan types.Notification),
		done:      make(chan struct{}),
		cancelErr: t.CancelErr,
	}

	t.mu.Lock()
	t.watches = append(t.watches, w)
	t.mu.Unlock()

	select {
	case t.watched <- w:
	default:
	}

	return w.ch, w.cancel, nil
}

func (t *Tree) Close() error {
	t.Closes.Add(1)
	return t.CloseErr
}

// Watches returns every watch registered so far.
func (t *Tree) Watches() []*Watch {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]*Watch(nil), t.watches...)
}

// Watched receives each watch right after it is registered.
func (t *Tree) Watched() <-chan *Watch {
	return t.watched
}

// Watch is one registered subscription.
type Watch struct {
	Path      string
	Recursive bool

	Cancels atomic.Int32

	cancelErr error

	mu     sync.Mutex
	closed bool
	once   sync.Once
	ch     chan types.Notification
	done   chan struct{}
}

// Feed blocks until the watcher takes the records or the watch is
// cancelled. It reports whether the records were delivered.
func (w *Watch) Feed(records ...types.RawChangeRecord) bool {
	return w.send(types.Notification{Records: records})
}

// Fail delivers a terminal notification and closes the watch.
func (w *Watch) Fail(err error) bool {
	ok := w.send(types.Notification{Err: err})
	w.closeChannel()
	return ok
}

// Drop closes the watch without telling why,
// like a connection that went away.
func (w *Watch) Drop() {
	w.closeChannel()
}

func (w *Watch) send(n types.Notification) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	select {
	case w.ch <- n:
		return true
	case <-w.done:
		return false
	}
}

func (w *Watch) cancel() error {
	w.Cancels.Add(1)

	w.once.Do(func() {
		close(w.done)
	})
	w.closeChannel()

	return w.cancelErr
}

func (w *Watch) closeChannel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	close(w.ch)
}
