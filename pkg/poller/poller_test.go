// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package poller_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/black-desk/smbwatch/internal/tests/fakeshare"
	"github.com/black-desk/smbwatch/pkg/poller"
	"github.com/black-desk/smbwatch/pkg/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/goleak"
)

var _ = Describe("Directory poller", func() {
	var (
		tree  *fakeshare.Tree
		p     *poller.Poller
		t0    time.Time
		leaks goleak.Option
	)

	BeforeEach(func() {
		leaks = goleak.IgnoreCurrent()

		t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		tree = fakeshare.NewTree()
		tree.Put("inbox", types.DirEntry{Name: "a.txt", Size: 1, ModTime: t0})
		tree.Put("inbox", types.DirEntry{
			Name: "sub", Attributes: types.FileAttributeDirectory, ModTime: t0,
		})
		tree.Put("inbox/sub", types.DirEntry{Name: "b.txt", Size: 1, ModTime: t0})

		var err error
		p, err = poller.New(
			poller.WithLister(tree),
			poller.WithInterval(10*time.Millisecond),
			poller.WithRequestTimeout(time.Second),
		)
		Expect(err).To(Succeed())
	})

	AfterEach(func() {
		goleak.VerifyNone(GinkgoT(), leaks)
	})

	It("should reject a non positive interval.", func() {
		_, err := poller.New(poller.WithLister(tree), poller.WithInterval(0))
		Expect(err).To(MatchError(poller.ErrInvalidInterval))
	})

	It("should fail to watch a folder it cannot list.", func() {
		tree.FailList("locked", errors.New("access denied"))
		_, _, err := p.Watch(context.Background(), "locked", false)
		Expect(err).To(MatchError(ContainSubstring("access denied")))
	})

	It("should report changes of a folder.", func() {
		notifications, cancel, err := p.Watch(context.Background(), "inbox", false)
		Expect(err).To(Succeed())
		defer cancel()

		tree.SetListing("inbox",
			types.DirEntry{Name: "c.txt", Size: 1, ModTime: t0},
			types.DirEntry{
				Name:       "sub",
				Attributes: types.FileAttributeDirectory,
				ModTime:    t0.Add(time.Second),
			},
		)

		var n types.Notification
		Eventually(notifications).Should(Receive(&n))
		Expect(n.Err).NotTo(HaveOccurred())
		Expect(n.Records).To(Equal([]types.RawChangeRecord{
			{Action: types.ActionRemoved, Filename: "a.txt"},
			{Action: types.ActionAdded, Filename: "c.txt"},
			{Action: types.ActionModified, Filename: "sub"},
		}))
	})

	It("should report size changes of files.", func() {
		notifications, cancel, err := p.Watch(context.Background(), "inbox", false)
		Expect(err).To(Succeed())
		defer cancel()

		tree.Put("inbox", types.DirEntry{Name: "a.txt", Size: 2, ModTime: t0})

		Eventually(notifications).Should(Receive(Equal(types.Notification{
			Records: []types.RawChangeRecord{
				{Action: types.ActionModified, Filename: "a.txt"},
			},
		})))
	})

	It("should stay quiet when nothing changes.", func() {
		notifications, cancel, err := p.Watch(context.Background(), "inbox", false)
		Expect(err).To(Succeed())
		defer cancel()

		Consistently(notifications, 100*time.Millisecond).ShouldNot(Receive())
	})

	It("should look into sub folders when recursive.", func() {
		notifications, cancel, err := p.Watch(context.Background(), "inbox", true)
		Expect(err).To(Succeed())
		defer cancel()

		tree.Put("inbox/sub", types.DirEntry{Name: "d.txt", ModTime: t0})

		Eventually(notifications).Should(Receive(Equal(types.Notification{
			Records: []types.RawChangeRecord{
				{Action: types.ActionAdded, Filename: "sub/d.txt"},
			},
		})))
	})

	It("should report everything below a removed folder.", func() {
		notifications, cancel, err := p.Watch(context.Background(), "inbox", true)
		Expect(err).To(Succeed())
		defer cancel()

		tree.Remove("inbox", "sub")

		Eventually(notifications).Should(Receive(Equal(types.Notification{
			Records: []types.RawChangeRecord{
				{Action: types.ActionRemoved, Filename: "sub"},
				{Action: types.ActionRemoved, Filename: "sub/b.txt"},
			},
		})))
	})

	It("should fail and close when the folder cannot be listed anymore.", func() {
		notifications, cancel, err := p.Watch(context.Background(), "inbox", false)
		Expect(err).To(Succeed())
		defer cancel()

		listErr := errors.New("connection reset")
		tree.FailList("inbox", listErr)

		var n types.Notification
		Eventually(notifications).Should(Receive(&n))
		Expect(n.Err).To(MatchError(listErr))
		Eventually(notifications).Should(BeClosed())
	})

	It("should close the channel when cancelled.", func() {
		notifications, cancel, err := p.Watch(context.Background(), "inbox", false)
		Expect(err).To(Succeed())

		Expect(cancel()).To(Succeed())
		Expect(cancel()).To(Succeed())
		Expect(notifications).To(BeClosed())
	})

	It("should close the channel when the context is done.", func() {
		ctx, cancelCtx := context.WithCancel(context.Background())
		notifications, cancel, err := p.Watch(ctx, "inbox", false)
		Expect(err).To(Succeed())
		defer cancel()

		cancelCtx()
		Eventually(notifications).Should(BeClosed())
	})
})

func TestPoller(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Directory Poller Suite")
}
