// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics counts what watches do, in prometheus format.
package metrics

import (
	"errors"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var ErrNamespaceMissing = errors.New("Namespace is missing.")

const DefaultNamespace = "smbwatch"

// Collector implements interfaces.Recorder on a registry of its own,
// so that several instances never clash.
type Collector struct {
	namespace string
	registry  *prometheus.Registry

	notifications *prometheus.CounterVec
	records       *prometheus.CounterVec
	dropped       *prometheus.CounterVec
	classified    *prometheus.CounterVec
	emitted       *prometheus.CounterVec
	emitFailed    *prometheus.CounterVec
	state         *prometheus.GaugeVec
}

var _ interfaces.Recorder = (*Collector)(nil)

type Opt func(c *Collector) (ret *Collector, err error)

func New(opts ...Opt) (ret *Collector, err error) {
	defer Wrap(&err, "create metrics collector")

	c := &Collector{namespace: DefaultNamespace}
	for i := range opts {
		c, err = opts[i](c)
		if err != nil {
			return
		}
	}

	c.notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "notifications_total",
			Help:      "Change notifications received.",
		},
		[]string{"watch"},
	)
	c.records = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "records_total",
			Help:      "Raw change records received.",
		},
		[]string{"watch"},
	)
	c.dropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "records_dropped_total",
			Help:      "Raw change records with an action that is not classified.",
		},
		[]string{"watch", "action"},
	)
	c.classified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "records_classified_total",
			Help:      "Raw change records classified, by action class and entry type.",
		},
		[]string{"watch", "class", "type"},
	)
	c.emitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "events_emitted_total",
			Help:      "Events delivered to the consumer.",
		},
		[]string{"watch", "event"},
	)
	c.emitFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "events_emit_failed_total",
			Help:      "Events the consumer failed to take.",
		},
		[]string{"watch"},
	)
	c.state = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      "watch_state",
			Help:      "1 for the current state of each watch.",
		},
		[]string{"watch", "state"},
	)

	c.registry = prometheus.NewRegistry()
	err = c.registry.Register(collectors.NewGoCollector())
	if err != nil {
		return
	}

	for _, collector := range []prometheus.Collector{
		c.notifications,
		c.records,
		c.dropped,
		c.classified,
		c.emitted,
		c.emitFailed,
		c.state,
	} {
		err = c.registry.Register(collector)
		if err != nil {
			return
		}
	}

	ret = c
	return
}

func WithNamespace(namespace string) Opt {
	return func(c *Collector) (ret *Collector, err error) {
		if namespace == "" {
			err = ErrNamespaceMissing
			return
		}

		c.namespace = namespace
		ret = c
		return
	}
}
