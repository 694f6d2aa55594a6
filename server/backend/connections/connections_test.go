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

package connections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coedit-team/coedit/server/backend/connections"
)

type fakeConn struct {
	sent [][]byte
}

func (c *fakeConn) Send(payload []byte) error {
	c.sent = append(c.sent, payload)
	return nil
}

func (c *fakeConn) Close() error {
	return nil
}

func TestRegistry(t *testing.T) {
	t.Run("register mints unique session ids test", func(t *testing.T) {
		registry := connections.NewRegistry()

		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			id := registry.Register(&fakeConn{})
			assert.NotEmpty(t, id)
			assert.False(t, seen[id])
			seen[id] = true
		}
		assert.Equal(t, 50, registry.Len())
	})

	t.Run("size equals opens minus closes test", func(t *testing.T) {
		registry := connections.NewRegistry()

		connA := &fakeConn{}
		connB := &fakeConn{}
		registry.Register(connA)
		registry.Register(connB)
		assert.Equal(t, 2, registry.Len())

		registry.Unregister(connA)
		assert.Equal(t, 1, registry.Len())

		// double unregister is a no-op
		registry.Unregister(connA)
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("session id lookup test", func(t *testing.T) {
		registry := connections.NewRegistry()

		conn := &fakeConn{}
		id := registry.Register(conn)

		found, ok := registry.SessionID(conn)
		assert.True(t, ok)
		assert.Equal(t, id, found)

		registry.Unregister(conn)
		_, ok = registry.SessionID(conn)
		assert.False(t, ok)
	})

	t.Run("all returns every registered connection test", func(t *testing.T) {
		registry := connections.NewRegistry()

		conns := []*fakeConn{{}, {}, {}}
		for _, conn := range conns {
			registry.Register(conn)
		}

		all := registry.All()
		assert.Len(t, all, 3)
	})
}
