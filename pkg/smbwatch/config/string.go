// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

func (c *Credentials) String() string {
	user := c.Username
	if c.Domain != "" {
		user = c.Domain + `\` + c.Username
	}

	return fmt.Sprintf("smb://%s@%s:%d/%s", user, c.Host, c.Port, c.Share)
}

func (c *Credentials) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("host", c.Host)
	enc.AddUint16("port", c.Port)
	enc.AddString("domain", c.Domain)
	enc.AddString("username", c.Username)
	enc.AddBool("password-set", c.Password != "")
	enc.AddString("share", c.Share)
	enc.AddDuration("connect-timeout", c.ConnectTimeout)
	enc.AddDuration("request-timeout", c.RequestTimeout)
	enc.AddString("ntlm-version", string(c.NTLMVersion))
	return nil
}

func (w *Watch) String() string {
	return fmt.Sprintf("watch [ folder: %q | recursive: %t | %s ]",
		w.Folder, w.Recursive, w.Event)
}

func (c *Config) MarshalLogObject(enc zapcore.ObjectEncoder) (err error) {
	enc.AddString("version", c.Version)
	enc.AddString("backend", string(c.Backend))
	if c.Credentials != nil {
		err = enc.AddObject("credentials", c.Credentials)
		if err != nil {
			return
		}
	}
	enc.AddDuration("poll-interval", c.PollInterval)
	enc.AddString("local-root", c.LocalRoot)
	enc.AddString("listen", c.Listen)
	for i := range c.Watches {
		enc.AddString(fmt.Sprintf("watch-%d", i), c.Watches[i].String())
	}
	return
}
