// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/black-desk/smbwatch/internal/tests/fakeshare"
	"github.com/black-desk/smbwatch/pkg/resolver"
	"github.com/black-desk/smbwatch/pkg/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Type resolver", func() {
	var (
		tree *fakeshare.Tree
		r    *resolver.Resolver
	)

	BeforeEach(func() {
		tree = fakeshare.NewTree()
		tree.AddFile("inbox", "report.pdf")
		tree.AddFolder("inbox", "2024")
		tree.AddFile("inbox/2024", "old.pdf")
		tree.AddFolder("inbox/2024", "drafts")
		tree.FailList("locked", errors.New("access denied"))

		var err error
		r, err = resolver.New()
		Expect(err).To(Succeed())
	})

	DescribeTable("resolve",
		func(path, filename string, expected types.EntryType) {
			Expect(r.Resolve(context.Background(), tree, path, filename)).
				To(Equal(expected))
		},
		Entry("a file", "inbox", "report.pdf", types.EntryTypeFile),
		Entry("a folder", "inbox", "2024", types.EntryTypeDirectory),
		Entry("a name not listed", "inbox", "gone.txt", types.EntryTypeUnknown),
		Entry("a name differing in case", "inbox", "Report.pdf", types.EntryTypeUnknown),
		Entry("a nested file", "inbox", "2024/old.pdf", types.EntryTypeFile),
		Entry("a nested file with backslashes", "inbox", "2024\\old.pdf", types.EntryTypeFile),
		Entry("a nested folder", "inbox", "2024/drafts", types.EntryTypeDirectory),
		Entry("a nested name not listed", "inbox", "2024/new.pdf", types.EntryTypeUnknown),
		Entry("a nested name below the share root", "", "inbox/report.pdf", types.EntryTypeFile),
		Entry("an unlistable folder", "locked", "a.txt", types.EntryTypeUnknown),
		Entry("an empty folder", "empty", "a.txt", types.EntryTypeUnknown),
	)

	It("should list the folder holding a nested name.", func() {
		tree.FailList("inbox", errors.New("access denied"))
		Expect(r.Resolve(context.Background(), tree, "inbox", "2024/old.pdf")).
			To(Equal(types.EntryTypeFile))
	})

	It("should list the folder once per call.", func() {
		r.Resolve(context.Background(), tree, "inbox", "report.pdf")
		Expect(tree.Lists.Load()).To(BeEquivalentTo(1))
	})
})

func TestResolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Type Resolver Suite")
}
