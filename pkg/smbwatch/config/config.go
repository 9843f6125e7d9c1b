// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Version string  `yaml:"version" validate:"required,eq=1"`
	Backend Backend `yaml:"backend" validate:"required,oneof=smb2 local"`

	Credentials *Credentials `yaml:"credentials" validate:"required"`

	// PollInterval is how often the smb2 backend lists watched folders
	// to find out what changed.
	PollInterval time.Duration `yaml:"poll-interval" validate:"gte=0"`
	// LocalRoot is the directory holding shares for the local backend.
	// Every share is a sub directory of it.
	LocalRoot string `yaml:"local-root" validate:"required_if=Backend local"`
	// Listen is the address of the HTTP server
	// exposing metrics and the event stream.
	// Nothing is served if it is empty.
	Listen string `yaml:"listen" validate:"omitempty,hostname_port"`

	Watches []Watch `yaml:"watches" validate:"required,min=1,dive"`

	log *zap.SugaredLogger `yaml:"-"`
	raw []byte
}

type Backend string

const (
	BackendSMB2  Backend = "smb2"
	BackendLocal Backend = "local"
)

type NTLMVersion string

const (
	NTLMVersionAuto NTLMVersion = "auto"
	NTLMVersionV1   NTLMVersion = "v1"
	NTLMVersionV2   NTLMVersion = "v2"
)

// Credentials describes how to reach and authenticate against a share.
// Password never shows up in logs.
type Credentials struct {
	Host     string `yaml:"host" validate:"required,hostname|ip"`
	Port     uint16 `yaml:"port"`
	Domain   string `yaml:"domain"`
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" json:"-"`
	Share    string `yaml:"share" validate:"required"`

	ConnectTimeout time.Duration `yaml:"connect-timeout" validate:"gte=0"`
	RequestTimeout time.Duration `yaml:"request-timeout" validate:"gte=0"`

	NTLMVersion NTLMVersion `yaml:"ntlm-version" validate:"oneof=auto v1 v2"`
}

// Watch is one folder to watch and the event to report from it.
type Watch struct {
	TriggerOn string `yaml:"trigger-on" validate:"eq=specificFolder"`
	// Folder is relative to the share root.
	Folder    string `yaml:"folder"`
	Recursive bool   `yaml:"recursive"`
	Event     string `yaml:"event" validate:"required,oneof=fileCreated fileDeleted fileUpdated folderCreated folderDeleted folderUpdated watchFolderUpdated"`
}
