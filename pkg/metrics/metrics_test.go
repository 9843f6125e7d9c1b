// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/black-desk/smbwatch/pkg/metrics"
	"github.com/black-desk/smbwatch/pkg/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("Metrics collector", func() {
	var c *metrics.Collector

	BeforeEach(func() {
		var err error
		c, err = metrics.New()
		Expect(err).To(Succeed())
	})

	It("should allow more than one instance.", func() {
		_, err := metrics.New()
		Expect(err).To(Succeed())
	})

	It("should reject an empty namespace.", func() {
		_, err := metrics.New(metrics.WithNamespace(""))
		Expect(err).To(MatchError(metrics.ErrNamespaceMissing))
	})

	It("should count records.", func() {
		c.RecordNotification("w", 3)
		c.RecordNotification("w", 2)
		c.RecordDropped("w", types.Action(99))
		c.RecordClassified("w", types.ActionClassCreated, types.EntryTypeFile)
		c.RecordEmitted("w", types.EventKindFileCreated)
		c.RecordEmitFailed("w")

		Expect(testutil.CollectAndCount(c.Registry(), "smbwatch_records_total")).To(Equal(1))

		expected := `
# HELP smbwatch_records_total Raw change records received.
# TYPE smbwatch_records_total counter
smbwatch_records_total{watch="w"} 5
# HELP smbwatch_events_emit_failed_total Events the consumer failed to take.
# TYPE smbwatch_events_emit_failed_total counter
smbwatch_events_emit_failed_total{watch="w"} 1
`
		Expect(testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected),
			"smbwatch_records_total", "smbwatch_events_emit_failed_total",
		)).To(Succeed())
	})

	It("should keep one state per watch.", func() {
		c.RecordState("w", "subscribing")
		c.RecordState("w", "active")
		c.RecordDropped("w", types.Action(99))

		rec := httptest.NewRecorder()
		c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

		body, err := io.ReadAll(rec.Result().Body)
		Expect(err).To(Succeed())
		Expect(string(body)).To(ContainSubstring(`smbwatch_watch_state{state="active",watch="w"} 1`))
		Expect(string(body)).To(ContainSubstring(`smbwatch_watch_state{state="subscribing",watch="w"} 0`))
		Expect(string(body)).To(ContainSubstring(`smbwatch_records_dropped_total{action="unknown(99)",watch="w"} 1`))
	})
})

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics Suite")
}
