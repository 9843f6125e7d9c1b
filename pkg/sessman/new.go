// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sessman

import (
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"go.uber.org/zap"
)

// SessionManager opens a share with one set of credentials.
type SessionManager struct {
	connector interfaces.Connector
	cred      *config.Credentials
	log       *zap.SugaredLogger
}

var _ interfaces.SessionManager = (*SessionManager)(nil)

type Opt func(m *SessionManager) (ret *SessionManager, err error)

func New(opts ...Opt) (ret *SessionManager, err error) {
	defer Wrap(&err, "create session manager")

	m := &SessionManager{}
	for i := range opts {
		m, err = opts[i](m)
		if err != nil {
			return
		}
	}

	if m.connector == nil {
		err = ErrConnectorMissing
		return
	}

	if m.cred == nil {
		err = ErrCredentialsMissing
		return
	}

	if m.log == nil {
		m.log = zap.NewNop().Sugar()
	}

	ret = m
	return
}

func WithConnector(c interfaces.Connector) Opt {
	return func(m *SessionManager) (ret *SessionManager, err error) {
		if c == nil {
			err = ErrConnectorMissing
			return
		}

		m.connector = c
		ret = m
		return
	}
}

func WithCredentials(cred *config.Credentials) Opt {
	return func(m *SessionManager) (ret *SessionManager, err error) {
		if cred == nil {
			err = ErrCredentialsMissing
			return
		}

		m.cred = cred
		ret = m
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(m *SessionManager) (ret *SessionManager, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		m.log = log
		ret = m
		return
	}
}
