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

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/coedit-team/coedit/internal/version"
)

const (
	namespace      = "coedit"
	eventTypeLabel = "event_type"
	reasonLabel    = "reason"
)

// Metrics manages the metric information that coedit is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	brokerConnections           prometheus.Gauge
	brokerBroadcastsTotal       *prometheus.CounterVec
	brokerDeliveryFailuresTotal prometheus.Counter
	brokerDroppedMessagesTotal  *prometheus.CounterVec
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{"server_version"}),
		brokerConnections: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "broker",
			Name:      "connections",
			Help:      "The current number of registered connections.",
		}),
		brokerBroadcastsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broker",
			Name:      "broadcasts_total",
			Help:      "The total number of broadcast fan-outs, labeled by event type.",
		}, []string{eventTypeLabel}),
		brokerDeliveryFailuresTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broker",
			Name:      "delivery_failures_total",
			Help:      "The total number of failed sends to individual recipients.",
		}),
		brokerDroppedMessagesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broker",
			Name:      "dropped_messages_total",
			Help:      "The total number of inbound messages dropped without a broadcast, labeled by reason.",
		}, []string{reasonLabel}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		"server_version": version.Version,
	}).Set(1)

	return metrics, nil
}

// AddConnection increments the connection gauge.
func (m *Metrics) AddConnection() {
	m.brokerConnections.Inc()
}

// RemoveConnection decrements the connection gauge.
func (m *Metrics) RemoveConnection() {
	m.brokerConnections.Dec()
}

// AddBroadcast increments the broadcast counter of the given event type.
func (m *Metrics) AddBroadcast(eventType string) {
	m.brokerBroadcastsTotal.With(prometheus.Labels{
		eventTypeLabel: eventType,
	}).Inc()
}

// AddDeliveryFailure increments the delivery failure counter.
func (m *Metrics) AddDeliveryFailure() {
	m.brokerDeliveryFailuresTotal.Inc()
}

// AddDroppedMessage increments the dropped message counter of the given
// reason.
func (m *Metrics) AddDroppedMessage(reason string) {
	m.brokerDroppedMessagesTotal.With(prometheus.Labels{
		reasonLabel: reason,
	}).Inc()
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
