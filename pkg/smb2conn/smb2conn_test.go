// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smb2conn_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/black-desk/smbwatch/pkg/sessman"
	"github.com/black-desk/smbwatch/pkg/smb2conn"
	"github.com/black-desk/smbwatch/pkg/smberr"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"
)

var _ = Describe("SMB2 connector", func() {
	var cred *config.Credentials

	BeforeEach(func() {
		cred = &config.Credentials{
			Host:           "fileserver",
			Username:       "alice",
			Password:       "secret",
			Share:          "data",
			ConnectTimeout: time.Second,
			NTLMVersion:    config.NTLMVersionAuto,
		}
	})

	It("should reject a non positive poll interval.", func() {
		_, err := smb2conn.New(smb2conn.WithPollInterval(0))
		Expect(err).To(HaveOccurred())
	})

	It("should refuse NTLMv1 without dialing.", func() {
		dialed := false
		c, err := smb2conn.New(smb2conn.WithDialer(
			func(context.Context, string, string) (net.Conn, error) {
				dialed = true
				return nil, errors.New("unreachable")
			},
		))
		Expect(err).To(Succeed())

		cred.NTLMVersion = config.NTLMVersionV1
		_, err = c.Connect(context.Background(), cred)
		Expect(err).To(MatchError(smb2conn.ErrNTLMv1Unsupported))
		Expect(dialed).To(BeFalse())
	})

	It("should dial the default port.", func() {
		var address string
		c, err := smb2conn.New(smb2conn.WithDialer(
			func(_ context.Context, _ string, addr string) (net.Conn, error) {
				address = addr
				return nil, unix.ECONNREFUSED
			},
		))
		Expect(err).To(Succeed())

		_, err = c.Connect(context.Background(), cred)
		Expect(err).To(MatchError(unix.ECONNREFUSED))
		Expect(address).To(Equal("fileserver:445"))
	})

	DescribeTable("connect failures through the session manager",
		func(dialErr error, reason string) {
			c, err := smb2conn.New(smb2conn.WithDialer(
				func(context.Context, string, string) (net.Conn, error) {
					return nil, dialErr
				},
			))
			Expect(err).To(Succeed())

			m, err := sessman.New(
				sessman.WithConnector(c),
				sessman.WithCredentials(cred),
			)
			Expect(err).To(Succeed())

			_, _, err = m.Open(context.Background())
			var connectErr *smberr.ConnectError
			Expect(errors.As(err, &connectErr)).To(BeTrue(), "%v", err)
			Expect(connectErr.Reason).To(Equal(reason))
		},
		Entry("refused",
			&net.OpError{Op: "dial", Net: "tcp", Err: fmt.Errorf("connect: %w", unix.ECONNREFUSED)},
			smberr.MsgConnectionRefused),
		Entry("unknown host",
			&net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{Err: "no such host", Name: "fileserver", IsNotFound: true}},
			smberr.MsgServerNotFound),
		Entry("timed out",
			context.DeadlineExceeded,
			smberr.MsgConnectionTimedOut),
	)
})

func TestSMB2Conn(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SMB2 Connector Suite")
}
