// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"os"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/go-playground/validator/v10"
)

func (c *Config) check() (err error) {
	defer Wrap(&err, "check configuration")

	c.fillDefaults()

	var validator = validator.New()
	err = validator.Struct(c)
	if err != nil {
		err = fmt.Errorf("validator: %w", err)
		return
	}

	if c.Backend == BackendSMB2 && c.Credentials.Password == "" {
		password := os.Getenv(PasswordEnv)
		if password == "" {
			err = ErrPasswordMissing
			return
		}

		c.Credentials.Password = password

		c.log.Debugw("Password loaded from environment.",
			"env", PasswordEnv,
		)
	}

	return
}

func (c *Config) fillDefaults() {
	if c.Backend == "" {
		c.Backend = BackendSMB2
	}

	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}

	for i := range c.Watches {
		if c.Watches[i].TriggerOn == "" {
			c.Watches[i].TriggerOn = TriggerOnSpecificFolder
		}
	}

	if c.Credentials == nil {
		return
	}

	cred := c.Credentials
	if cred.Port == 0 {
		cred.Port = DefaultPort
	}
	if cred.ConnectTimeout == 0 {
		cred.ConnectTimeout = DefaultConnectTimeout
	}
	if cred.RequestTimeout == 0 {
		cred.RequestTimeout = DefaultRequestTimeout
	}
	if cred.NTLMVersion == "" {
		cred.NTLMVersion = NTLMVersionAuto
	}
}
