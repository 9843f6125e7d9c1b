// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sessman

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/smberr"
)

// Open connects, authenticates and opens the configured share.
// Any failure is returned as *smberr.ConnectError,
// and nothing opened on the way is left behind.
func (m *SessionManager) Open(ctx context.Context) (
	tree interfaces.Tree, closer interfaces.Closer, err error,
) {
	m.log.Infow("Connecting to SMB server.",
		"host", fmt.Sprintf("%s:%d", m.cred.Host, m.cred.Port),
		"share", m.cred.Share,
		"user", fmt.Sprintf(`%s\%s`, m.cred.Domain, m.cred.Username),
	)

	session, err := m.connector.Connect(ctx, m.cred)
	if err != nil {
		m.log.Debugw("Failed to establish session.", "error", err)
		err = smberr.NewConnectError(err)
		return
	}

	tree, err = session.OpenShare(ctx, m.cred.Share)
	if err != nil {
		m.log.Debugw("Failed to open share.",
			"share", m.cred.Share,
			"error", err,
		)

		closeErr := session.Close()
		if closeErr != nil {
			m.log.Debugw("Failed to close session.", "error", closeErr)
		}

		tree = nil
		err = smberr.NewConnectError(err)
		return
	}

	m.log.Infow("Share opened.", "credentials", m.cred)

	closer = m.closer(session, tree)
	return
}

func (m *SessionManager) closer(session interfaces.Session, tree interfaces.Tree) interfaces.Closer {
	var (
		once sync.Once
		err  error
	)

	return func() error {
		once.Do(func() {
			treeErr := tree.Close()
			if treeErr != nil {
				m.log.Debugw("Failed to close share.", "error", treeErr)
			}

			sessionErr := session.Close()
			if sessionErr != nil {
				m.log.Debugw("Failed to close session.", "error", sessionErr)
			}

			err = errors.Join(treeErr, sessionErr)
			if err == nil {
				m.log.Debugw("Share and session closed.",
					"share", m.cred.Share,
				)
			}
		})

		return err
	}
}
