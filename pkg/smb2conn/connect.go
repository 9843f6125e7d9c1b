// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smb2conn

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"github.com/hirochachacha/go-smb2"
	"go.uber.org/zap"
)

// Connect dials the server and authenticates with NTLMv2.
// The connect timeout of cred bounds both.
func (c *Connector) Connect(ctx context.Context, cred *config.Credentials) (
	ret interfaces.Session, err error,
) {
	if cred.NTLMVersion == config.NTLMVersionV1 {
		err = ErrNTLMv1Unsupported
		return
	}

	ctx, cancel := withTimeout(ctx, cred.ConnectTimeout)
	defer cancel()

	port := cred.Port
	if port == 0 {
		port = config.DefaultPort
	}
	addr := net.JoinHostPort(cred.Host, strconv.Itoa(int(port)))

	conn, err := c.dial(ctx, "tcp", addr)
	if err != nil {
		return
	}

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     cred.Username,
			Password: cred.Password,
			Domain:   cred.Domain,
		},
	}

	s, err := d.DialContext(ctx, conn)
	if err != nil {
		conn.Close()
		err = statusError(err)
		return
	}

	c.log.Debugw("Session established.", "address", addr)

	ret = &session{
		s:              s,
		conn:           conn,
		requestTimeout: cred.RequestTimeout,
		pollInterval:   c.pollInterval,
		log:            c.log,
	}
	return
}

type session struct {
	s              *smb2.Session
	conn           net.Conn
	requestTimeout time.Duration
	pollInterval   time.Duration
	log            *zap.SugaredLogger
}

func (s *session) OpenShare(ctx context.Context, name string) (ret interfaces.Tree, err error) {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	share, err := s.s.WithContext(ctx).Mount(name)
	if err != nil {
		err = statusError(err)
		return
	}

	t := &tree{
		share:          share.WithContext(context.Background()),
		requestTimeout: s.requestTimeout,
		log:            s.log.With("share", name),
	}

	t.poller, err = newPoller(t, s.pollInterval, s.requestTimeout, t.log)
	if err != nil {
		_ = share.Umount()
		return
	}

	ret = t
	return
}

// Close logs off and closes the connection.
func (s *session) Close() error {
	logoffErr := s.s.Logoff()
	if logoffErr != nil {
		logoffErr = statusError(logoffErr)
	}

	closeErr := s.conn.Close()
	if errors.Is(closeErr, net.ErrClosed) {
		closeErr = nil
	}

	return errors.Join(logoffErr, closeErr)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
