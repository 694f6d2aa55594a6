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

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/coedit-team/coedit/server/backend"
	"github.com/coedit-team/coedit/server/broker"
	"github.com/coedit-team/coedit/server/profiling/prometheus"
)

func newTestServer(t *testing.T) (*Server, *backend.Backend, *httptest.Server) {
	t.Helper()

	metrics, err := prometheus.NewMetrics()
	assert.NoError(t, err)

	be, err := backend.New(&backend.Config{}, metrics)
	assert.NoError(t, err)

	s := NewServer(&Config{Port: 0}, be, broker.New(be))
	ts := httptest.NewServer(http.HandlerFunc(s.handleUpgrade))
	t.Cleanup(ts.Close)

	return s, be, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestServer(t *testing.T) {
	t.Run("announce round trip test", func(t *testing.T) {
		_, be, ts := newTestServer(t)

		client := dial(t, ts)
		assert.Eventually(t, func() bool {
			return be.Connections.Len() == 1
		}, time.Second, 10*time.Millisecond)

		join := []byte(`{"type":"user-event","userId":"u1","username":"Alice"}`)
		assert.NoError(t, client.WriteMessage(websocket.TextMessage, join))

		_, payload, err := client.ReadMessage()
		assert.NoError(t, err)
		assert.Contains(t, string(payload), `"user-event"`)
		assert.Contains(t, string(payload), "Alice joined to edit the document")
	})

	t.Run("peer disconnect unregisters connection test", func(t *testing.T) {
		_, be, ts := newTestServer(t)

		clientA := dial(t, ts)
		clientB := dial(t, ts)
		assert.Eventually(t, func() bool {
			return be.Connections.Len() == 2
		}, time.Second, 10*time.Millisecond)

		assert.NoError(t, clientA.Close())

		assert.Eventually(t, func() bool {
			return be.Connections.Len() == 1
		}, time.Second, 10*time.Millisecond)

		// the remaining client receives the farewell broadcast
		_, payload, err := clientB.ReadMessage()
		assert.NoError(t, err)
		assert.Contains(t, string(payload), " left the document")
	})
}
