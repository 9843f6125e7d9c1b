//go:build wireinject
// +build wireinject

// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/smbwatch/config"
	"github.com/google/wire"
	"go.uber.org/zap"
)

func injectedApp(
	*config.Config, *zap.SugaredLogger,
) (
	*app, error,
) {
	panic(wire.Build(set))
}

func injectedConnector(
	*config.Config, *zap.SugaredLogger,
) (
	interfaces.Connector, error,
) {
	panic(wire.Build(provideConnector))
}
