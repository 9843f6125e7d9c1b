// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/black-desk/smbwatch/pkg/localfs"
	"github.com/black-desk/smbwatch/pkg/smb2conn"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func TestCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cmd Suite")
}

const localConfig = `
version: 1
backend: local
local-root: %s
credentials:
  host: localhost
  username: nobody
  share: data
watches:
  - folder: inbox
    event: fileCreated
`

var _ = Describe("Command", func() {
	var (
		root string
		log  = zap.NewNop().Sugar()
	)

	writeConfig := func(content string) {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		flags.CfgPath = path
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		Expect(os.MkdirAll(filepath.Join(root, "data", "inbox"), 0o755)).To(Succeed())

		old := flags.CfgPath
		DeferCleanup(func() { flags.CfgPath = old })
	})

	Context("with a local backend", func() {
		BeforeEach(func() {
			writeConfig(fmt.Sprintf(localConfig, root))
		})

		It("should build a local connector.", func() {
			cfg, err := loadConfig(log, false)
			Expect(err).To(Succeed())

			c, err := injectedConnector(cfg, log)
			Expect(err).To(Succeed())
			Expect(c).To(BeAssignableToTypeOf(&localfs.Connector{}))
		})

		It("should not serve anything without listen address.", func() {
			cfg, err := loadConfig(log, false)
			Expect(err).To(Succeed())

			a, err := injectedApp(cfg, log)
			Expect(err).To(Succeed())
			Expect(a.server).To(BeNil())
			Expect(a.broadcaster.Close()).To(Succeed())
		})

		It("should pass the share check.", func() {
			Expect(checkShareCmdRun(checkShareCmd)).To(Succeed())
		})

		It("should fail the share check for a missing folder.", func() {
			Expect(os.Remove(filepath.Join(root, "data", "inbox"))).To(Succeed())
			Expect(checkShareCmdRun(checkShareCmd)).NotTo(Succeed())
		})
	})

	Context("with a smb2 backend", func() {
		It("should build a smb2 connector.", func() {
			cfg, err := config.New(config.WithContent([]byte(`
version: 1
backend: smb2
credentials:
  host: fileserver
  username: alice
  password: secret
  share: data
watches:
  - event: fileCreated
`)))
			Expect(err).To(Succeed())

			c, err := injectedConnector(cfg, log)
			Expect(err).To(Succeed())
			Expect(c).To(BeAssignableToTypeOf(&smb2conn.Connector{}))
		})
	})

	Context("with a missing configuration file", func() {
		It("should fail unless falling back.", func() {
			flags.CfgPath = filepath.Join(root, "missing.yaml")

			_, err := loadConfig(log, false)
			Expect(err).To(MatchError(os.ErrNotExist))

			_, err = loadConfig(log, true)
			Expect(err).To(MatchError(os.ErrNotExist))
		})

		It("should fall back to the default configuration.", func() {
			flags.CfgPath = SMBWatchCfgPath
			if _, err := os.Stat(SMBWatchCfgPath); err == nil {
				Skip("configuration installed on this machine")
			}

			cfg, err := loadConfig(log, true)
			Expect(err).To(Succeed())
			Expect(cfg.Backend).To(Equal(config.BackendLocal))
		})
	})
})
