/*
 * Copyright 2025 The Coedit Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package prometheus

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("connection gauge test", func(t *testing.T) {
		metrics, err := NewMetrics()
		assert.NoError(t, err)

		metrics.AddConnection()
		metrics.AddConnection()
		assert.Equal(t, float64(2), testutil.ToFloat64(metrics.brokerConnections))

		metrics.RemoveConnection()
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.brokerConnections))
	})

	t.Run("broadcast counter by event type test", func(t *testing.T) {
		metrics, err := NewMetrics()
		assert.NoError(t, err)

		metrics.AddBroadcast("user-event")
		metrics.AddBroadcast("user-event")
		metrics.AddBroadcast("content-change")

		expected := `
			# HELP coedit_broker_broadcasts_total The total number of broadcast fan-outs, labeled by event type.
			# TYPE coedit_broker_broadcasts_total counter
			coedit_broker_broadcasts_total{event_type="content-change"} 1
			coedit_broker_broadcasts_total{event_type="user-event"} 2
		`
		if err := testutil.CollectAndCompare(metrics.brokerBroadcastsTotal, strings.NewReader(expected)); err != nil {
			t.Errorf("unexpected collecting result:\n%s", err)
		}
	})

	t.Run("dropped message counter by reason test", func(t *testing.T) {
		metrics, err := NewMetrics()
		assert.NoError(t, err)

		metrics.AddDroppedMessage("parse_error")
		metrics.AddDroppedMessage("unknown_type")
		metrics.AddDroppedMessage("unknown_type")

		expected := `
			# HELP coedit_broker_dropped_messages_total The total number of inbound messages dropped without a broadcast, labeled by reason.
			# TYPE coedit_broker_dropped_messages_total counter
			coedit_broker_dropped_messages_total{reason="parse_error"} 1
			coedit_broker_dropped_messages_total{reason="unknown_type"} 2
		`
		if err := testutil.CollectAndCompare(metrics.brokerDroppedMessagesTotal, strings.NewReader(expected)); err != nil {
			t.Errorf("unexpected collecting result:\n%s", err)
		}
	})

	t.Run("delivery failure counter test", func(t *testing.T) {
		metrics, err := NewMetrics()
		assert.NoError(t, err)

		metrics.AddDeliveryFailure()
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.brokerDeliveryFailuresTotal))
	})
}
