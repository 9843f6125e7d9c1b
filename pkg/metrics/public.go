// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"net/http"

	"github.com/black-desk/smbwatch/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var watchStates = []string{
	"idle", "subscribing", "active", "stopping", "closed", "failed",
}

func (c *Collector) RecordNotification(watch string, records int) {
	c.notifications.WithLabelValues(watch).Inc()
	c.records.WithLabelValues(watch).Add(float64(records))
}

func (c *Collector) RecordDropped(watch string, action types.Action) {
	c.dropped.WithLabelValues(watch, action.String()).Inc()
}

func (c *Collector) RecordClassified(watch string, class types.ActionClass, entry types.EntryType) {
	c.classified.WithLabelValues(watch, class.String(), entry.String()).Inc()
}

func (c *Collector) RecordEmitted(watch string, kind types.EventKind) {
	c.emitted.WithLabelValues(watch, kind.String()).Inc()
}

func (c *Collector) RecordEmitFailed(watch string) {
	c.emitFailed.WithLabelValues(watch).Inc()
}

// RecordState sets the gauge of state to 1
// and the gauges of every other state of the watch to 0.
func (c *Collector) RecordState(watch string, state string) {
	for _, s := range watchStates {
		value := 0.0
		if s == state {
			value = 1
		}
		c.state.WithLabelValues(watch, s).Set(value)
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
