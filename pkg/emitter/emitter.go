// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package emitter delivers matched events to whoever consumes them.
package emitter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/types"
)

var ErrWriterMissing = errors.New("Writer is missing.")

// Func adapts a function to interfaces.Emitter.
type Func func(ctx context.Context, event *types.Event) error

var _ interfaces.Emitter = Func(nil)

func (f Func) Emit(ctx context.Context, event *types.Event) error {
	return f(ctx, event)
}

// JSONLines writes every event as one line of JSON.
// It is safe for concurrent use by several watches.
type JSONLines struct {
	mu  sync.Mutex
	enc *json.Encoder
}

var _ interfaces.Emitter = (*JSONLines)(nil)

func NewJSONLines(w io.Writer) (ret *JSONLines, err error) {
	defer Wrap(&err, "create json lines emitter")

	if w == nil {
		err = ErrWriterMissing
		return
	}

	ret = &JSONLines{enc: json.NewEncoder(w)}
	return
}

func (e *JSONLines) Emit(ctx context.Context, event *types.Event) (err error) {
	defer Wrap(&err, "write event")

	err = ctx.Err()
	if err != nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	err = e.enc.Encode(event)
	return
}

// Multi emits to every emitter in order.
// All of them are tried; the errors are joined.
type Multi []interfaces.Emitter

var _ interfaces.Emitter = Multi(nil)

func (m Multi) Emit(ctx context.Context, event *types.Event) error {
	var errs []error
	for i := range m {
		err := m[i].Emit(ctx, event)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
