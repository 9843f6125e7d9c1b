// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package classifier

import (
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"go.uber.org/zap"
)

// Classifier turns raw change records into candidate event kinds.
type Classifier struct {
	resolver interfaces.Resolver
	log      *zap.SugaredLogger
}

var _ interfaces.Classifier = (*Classifier)(nil)

type Opt func(c *Classifier) (ret *Classifier, err error)

func New(opts ...Opt) (ret *Classifier, err error) {
	defer Wrap(&err, "create change classifier")

	c := &Classifier{}
	for i := range opts {
		c, err = opts[i](c)
		if err != nil {
			return
		}
	}

	if c.resolver == nil {
		err = ErrResolverMissing
		return
	}

	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}

	ret = c
	return
}

func WithResolver(r interfaces.Resolver) Opt {
	return func(c *Classifier) (ret *Classifier, err error) {
		if r == nil {
			err = ErrResolverMissing
			return
		}

		c.resolver = r
		ret = c
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(c *Classifier) (ret *Classifier, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		c.log = log
		ret = c
		return
	}
}
