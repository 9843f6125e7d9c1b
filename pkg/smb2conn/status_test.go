// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smb2conn

import (
	"errors"
	"fmt"

	"github.com/black-desk/smbwatch/pkg/smberr"
	"github.com/hirochachacha/go-smb2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Protocol errors", func() {
	It("should carry the status code of a response.", func() {
		resp := &smb2.ResponseError{Code: 3221225581}
		err := statusError(fmt.Errorf("session setup: %w", resp))

		code, ok := smberr.Status(err)
		Expect(ok).To(BeTrue())
		Expect(code).To(BeEquivalentTo(3221225581))
		Expect(errors.Is(err, resp)).To(BeTrue())
		Expect(smberr.Translate(err)).To(Equal(
			"Logon Failure - Check your username, password, and domain (Code: 3221225581)",
		))
	})

	It("should leave other errors alone.", func() {
		orig := errors.New("broken pipe")
		Expect(statusError(orig)).To(BeIdenticalTo(orig))
	})

	DescribeTable("share paths",
		func(in, out string) {
			Expect(sharePath(in)).To(Equal(out))
		},
		Entry("root", "", ""),
		Entry("dot", ".", ""),
		Entry("slashes", "/incoming/", "incoming"),
		Entry("nested", "a/b", "a/b"),
		Entry("backslashes", `\a\b\`, `a\b`),
	)
})
