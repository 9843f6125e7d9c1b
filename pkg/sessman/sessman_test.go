// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sessman_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/black-desk/smbwatch/internal/tests/fakeshare"
	"github.com/black-desk/smbwatch/pkg/sessman"
	"github.com/black-desk/smbwatch/pkg/smberr"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sys/unix"
)

var _ = Describe("Session manager", func() {
	var (
		server *fakeshare.Server
		cred   *config.Credentials
		logs   *observer.ObservedLogs
		m      *sessman.SessionManager
	)

	BeforeEach(func() {
		server = fakeshare.NewServer()
		cred = &config.Credentials{
			Host:     "fileserver",
			Port:     config.DefaultPort,
			Domain:   "WORKGROUP",
			Username: "alice",
			Password: "secret",
			Share:    "data",
		}

		var core zapcore.Core
		core, logs = observer.New(zap.DebugLevel)

		var err error
		m, err = sessman.New(
			sessman.WithConnector(server),
			sessman.WithCredentials(cred),
			sessman.WithLogger(zap.New(core).Sugar()),
		)
		Expect(err).To(Succeed())
	})

	Context("created without a connector", func() {
		It("should fail.", func() {
			_, err := sessman.New(sessman.WithCredentials(cred))
			Expect(err).To(MatchError(sessman.ErrConnectorMissing))
		})
	})

	Context("created without credentials", func() {
		It("should fail.", func() {
			_, err := sessman.New(sessman.WithConnector(server))
			Expect(err).To(MatchError(sessman.ErrCredentialsMissing))
		})
	})

	Context("with a reachable server", func() {
		It("should open the share.", func() {
			tree, closer, err := m.Open(context.Background())
			Expect(err).To(Succeed())
			Expect(tree).To(BeIdenticalTo(server.Tree))
			Expect(closer).NotTo(BeNil())
			Expect(server.Credentials()).To(ConsistOf(*cred))
		})

		It("should close share and session exactly once.", func() {
			_, closer, err := m.Open(context.Background())
			Expect(err).To(Succeed())

			Expect(closer()).To(Succeed())
			Expect(closer()).To(Succeed())

			Expect(server.Tree.Closes.Load()).To(BeEquivalentTo(1))
			Expect(server.SessionCloses.Load()).To(BeEquivalentTo(1))
		})

		It("should still close the session when closing the share fails.", func() {
			server.Tree.CloseErr = errors.New("tree disconnect failed")

			_, closer, err := m.Open(context.Background())
			Expect(err).To(Succeed())

			Expect(closer()).To(MatchError(server.Tree.CloseErr))
			Expect(server.SessionCloses.Load()).To(BeEquivalentTo(1))
		})

		It("should never log the password.", func() {
			_, _, err := m.Open(context.Background())
			Expect(err).To(Succeed())

			for _, entry := range logs.All() {
				Expect(entry.Message).NotTo(ContainSubstring("secret"))
				Expect(fmt.Sprint(entry.ContextMap())).NotTo(ContainSubstring("secret"))
			}
		})
	})

	Context("when the server refuses the connection", func() {
		It("should fail with a connect error.", func() {
			server.ConnectErr = fmt.Errorf("dial: %w", unix.ECONNREFUSED)

			tree, closer, err := m.Open(context.Background())
			Expect(tree).To(BeNil())
			Expect(closer).To(BeNil())

			var connectErr *smberr.ConnectError
			Expect(errors.As(err, &connectErr)).To(BeTrue(), "%v", err)
			Expect(connectErr.Error()).To(Equal(
				"Failed to connect to SMB server: " + smberr.MsgConnectionRefused,
			))
			Expect(errors.Is(err, unix.ECONNREFUSED)).To(BeTrue())
		})
	})

	Context("when the share cannot be opened", func() {
		It("should close the session and fail with a connect error.", func() {
			server.OpenErr = &smberr.StatusError{Code: 3221226036}

			tree, closer, err := m.Open(context.Background())
			Expect(tree).To(BeNil())
			Expect(closer).To(BeNil())

			var connectErr *smberr.ConnectError
			Expect(errors.As(err, &connectErr)).To(BeTrue(), "%v", err)
			Expect(connectErr.Reason).To(ContainSubstring("Code: 3221226036"))
			Expect(server.SessionCloses.Load()).To(BeEquivalentTo(1))
		})
	})
})

func TestSessman(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Manager Suite")
}
