// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package localfs_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/black-desk/smbwatch/pkg/classifier"
	"github.com/black-desk/smbwatch/pkg/emitter"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/localfs"
	"github.com/black-desk/smbwatch/pkg/resolver"
	"github.com/black-desk/smbwatch/pkg/sessman"
	"github.com/black-desk/smbwatch/pkg/smberr"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"github.com/black-desk/smbwatch/pkg/subman"
	"github.com/black-desk/smbwatch/pkg/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Local filesystem", func() {
	var (
		root   string
		share  string
		tree   interfaces.Tree
		closer interfaces.Closer
	)

	open := func(name string) (interfaces.Tree, interfaces.Closer, error) {
		c, err := localfs.New(localfs.WithRoot(root))
		Expect(err).To(Succeed())

		m, err := sessman.New(
			sessman.WithConnector(c),
			sessman.WithCredentials(&config.Credentials{
				Host:     "localhost",
				Username: "nobody",
				Share:    name,
			}),
		)
		Expect(err).To(Succeed())

		return m.Open(context.Background())
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		share = filepath.Join(root, "data")
		Expect(os.MkdirAll(filepath.Join(share, "inbox"), 0o755)).To(Succeed())

		var err error
		tree, closer, err = open("data")
		Expect(err).To(Succeed())
	})

	AfterEach(func() {
		Expect(closer()).To(Succeed())
	})

	It("should need a root.", func() {
		_, err := localfs.New()
		Expect(err).To(MatchError(localfs.ErrRootMissing))
	})

	It("should fail to open a share that does not exist.", func() {
		_, _, err := open("missing")
		var connectErr *smberr.ConnectError
		Expect(errors.As(err, &connectErr)).To(BeTrue(), "%v", err)
		Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
	})

	It("should refuse to leave the share.", func() {
		_, err := tree.ListDirectory(context.Background(), "../..")
		Expect(err).To(MatchError(localfs.ErrOutsideShare))
	})

	It("should list files and folders.", func() {
		Expect(os.WriteFile(filepath.Join(share, "inbox", "a.txt"), []byte("hello"), 0o644)).
			To(Succeed())
		Expect(os.Mkdir(filepath.Join(share, "inbox", "sub"), 0o755)).To(Succeed())

		entries, err := tree.ListDirectory(context.Background(), "inbox")
		Expect(err).To(Succeed())
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Name).To(Equal("a.txt"))
		Expect(entries[0].IsDir()).To(BeFalse())
		Expect(entries[0].Size).To(BeEquivalentTo(5))
		Expect(entries[1].Name).To(Equal("sub"))
		Expect(entries[1].IsDir()).To(BeTrue())
	})

	It("should report created and removed files.", func() {
		notifications, cancel, err := tree.WatchDirectory(context.Background(), "inbox", false)
		Expect(err).To(Succeed())
		defer cancel()

		path := filepath.Join(share, "inbox", "a.txt")
		Expect(os.WriteFile(path, nil, 0o644)).To(Succeed())
		Eventually(notifications).Should(Receive(Equal(types.Notification{
			Records: []types.RawChangeRecord{
				{Action: types.ActionAdded, Filename: "a.txt"},
			},
		})))

		Expect(os.Remove(path)).To(Succeed())
		Eventually(notifications).Should(Receive(Equal(types.Notification{
			Records: []types.RawChangeRecord{
				{Action: types.ActionRemoved, Filename: "a.txt"},
			},
		})))
	})

	It("should close the channel when cancelled.", func() {
		notifications, cancel, err := tree.WatchDirectory(context.Background(), "inbox", false)
		Expect(err).To(Succeed())

		Expect(cancel()).To(Succeed())
		Expect(cancel()).To(Succeed())
		Eventually(notifications).Should(BeClosed())
	})

	Context("behind a subscription manager", func() {
		watch := func(target types.EventKind, recursive bool) (*subman.SubscriptionManager, chan types.Event) {
			r, err := resolver.New()
			Expect(err).To(Succeed())
			c, err := classifier.New(classifier.WithResolver(r))
			Expect(err).To(Succeed())

			events := make(chan types.Event, 16)
			m, err := subman.New(
				subman.WithRequest(types.WatchRequest{
					Path:        "inbox",
					Recursive:   recursive,
					TargetEvent: target,
				}),
				subman.WithTree(tree),
				subman.WithCloser(closer),
				subman.WithClassifier(c),
				subman.WithEmitter(emitter.Func(func(_ context.Context, ev *types.Event) error {
					events <- *ev
					return nil
				})),
			)
			Expect(err).To(Succeed())
			Expect(m.Subscribe(context.Background())).To(Succeed())

			go func() {
				defer GinkgoRecover()
				Expect(m.Run(context.Background())).To(Succeed())
			}()

			DeferCleanup(func() {
				Expect(m.Stop()).To(Succeed())
			})

			return m, events
		}

		It("should tell a new folder from a new file.", func() {
			_, events := watch(types.EventKindFolderCreated, false)

			Expect(os.WriteFile(filepath.Join(share, "inbox", "a.txt"), nil, 0o644)).To(Succeed())
			Expect(os.Mkdir(filepath.Join(share, "inbox", "sub"), 0o755)).To(Succeed())

			var ev types.Event
			Eventually(events).Should(Receive(&ev))
			Expect(ev.Filename).To(Equal("sub"))
			Expect(ev.IsDirectory).To(Equal(types.EntryTypeDirectory))
			Consistently(events).ShouldNot(Receive())
		})

		It("should report deletions in the wide set.", func() {
			path := filepath.Join(share, "inbox", "a.txt")
			Expect(os.WriteFile(path, nil, 0o644)).To(Succeed())

			_, events := watch(types.EventKindFolderDeleted, false)
			Expect(os.Remove(path)).To(Succeed())

			Eventually(events).Should(Receive(Equal(types.Event{
				Event:       types.EventKindFolderDeleted,
				Action:      types.ActionRemoved,
				ActionName:  "removed",
				Filename:    "a.txt",
				Path:        "inbox",
				IsDirectory: types.EntryTypeUnknown,
			})))
		})

		It("should report nested entries of a recursive watch as unknown.", func() {
			Expect(os.Mkdir(filepath.Join(share, "inbox", "sub"), 0o755)).To(Succeed())
			_, events := watch(types.EventKindFileCreated, true)

			Expect(os.WriteFile(filepath.Join(share, "inbox", "sub", "b.txt"), nil, 0o644)).
				To(Succeed())

			Eventually(events).Should(Receive(Equal(types.Event{
				Event:       types.EventKindFileCreated,
				Action:      types.ActionAdded,
				ActionName:  "added",
				Filename:    "sub/b.txt",
				Path:        "inbox",
				IsDirectory: types.EntryTypeUnknown,
			})))
		})
	})
})

func TestLocalFS(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Local Filesystem Suite")
}
