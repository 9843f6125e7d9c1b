// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package broadcast streams emitted events to websocket clients.
package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/types"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	ErrLoggerMissing = errors.New("Logger is missing.")
	ErrClosed        = errors.New("Broadcaster is closed.")
)

const DefaultClientBuffer = 64

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func (c *client) writePump() {
	defer close(c.done)
	defer c.conn.Close()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			return
		}
	}

	_ = c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}

// Broadcaster is an emitter that sends every event to all connected
// websocket clients. Clients that cannot keep up are disconnected.
type Broadcaster struct {
	upgrader websocket.Upgrader
	buffer   int
	log      *zap.SugaredLogger

	mu      sync.RWMutex
	closed  bool
	clients map[*client]struct{}
}

var (
	_ interfaces.Emitter = (*Broadcaster)(nil)
	_ http.Handler       = (*Broadcaster)(nil)
)

type Opt func(b *Broadcaster) (ret *Broadcaster, err error)

func New(opts ...Opt) (ret *Broadcaster, err error) {
	defer Wrap(&err, "create websocket broadcaster")

	b := &Broadcaster{
		buffer:  DefaultClientBuffer,
		clients: map[*client]struct{}{},
	}

	for i := range opts {
		b, err = opts[i](b)
		if err != nil {
			return
		}
	}

	if b.log == nil {
		b.log = zap.NewNop().Sugar()
	}

	ret = b
	return
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(b *Broadcaster) (ret *Broadcaster, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		b.log = log
		ret = b
		return
	}
}

// WithCheckOrigin replaces the same origin check of the upgrader.
func WithCheckOrigin(check func(r *http.Request) bool) Opt {
	return func(b *Broadcaster) (ret *Broadcaster, err error) {
		b.upgrader.CheckOrigin = check
		ret = b
		return
	}
}

func WithClientBuffer(size int) Opt {
	return func(b *Broadcaster) (ret *Broadcaster, err error) {
		if size > 0 {
			b.buffer = size
		}
		ret = b
		return
	}
}

// ServeHTTP upgrades the request and keeps the client
// until it goes away or the broadcaster is closed.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Debugw("Failed to upgrade websocket connection.",
			"remote", r.RemoteAddr,
			"error", err,
		)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, b.buffer),
		done: make(chan struct{}),
	}

	if !b.add(c) {
		conn.Close()
		return
	}

	go c.writePump()

	b.log.Infow("Event stream client connected.", "remote", r.RemoteAddr)
	defer b.log.Infow("Event stream client disconnected.", "remote", r.RemoteAddr)

	for {
		_, _, err = conn.ReadMessage()
		if err != nil {
			break
		}
	}

	b.remove(c)
	<-c.done
}

func (b *Broadcaster) Emit(ctx context.Context, event *types.Event) (err error) {
	defer Wrap(&err, "broadcast event")

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		err = ErrClosed
		return
	}

	slow := []*client{}
	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	b.mu.RUnlock()

	for _, c := range slow {
		b.log.Warnw("Event stream client too slow, disconnecting.",
			"remote", c.conn.RemoteAddr(),
		)
		b.remove(c)
	}

	return
}

func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.clients)
}

// Close disconnects every client. Later connections are refused.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	b.closed = true
	clients := b.clients
	b.clients = map[*client]struct{}{}
	b.mu.Unlock()

	for c := range clients {
		close(c.send)
	}

	for c := range clients {
		<-c.done
	}

	return nil
}

func (b *Broadcaster) add(c *client) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}

	b.clients[c] = struct{}{}
	return true
}

func (b *Broadcaster) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.clients[c]; !ok {
		return
	}

	delete(b.clients, c)
	close(c.send)
}
