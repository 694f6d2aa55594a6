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
	"fmt"
	gosync "sync"

	"github.com/gorilla/websocket"
)

// conn wraps a gorilla websocket connection behind the narrow Conn surface
// the broker depends on. gorilla allows at most one concurrent writer, so
// writes are serialized with a mutex.
type conn struct {
	mu gosync.Mutex
	ws *websocket.Conn
}

// newConn creates a conn wrapping the given websocket connection.
func newConn(ws *websocket.Conn) *conn {
	return &conn{
		ws: ws,
	}
}

// Send delivers the given payload to the peer as a text message.
func (c *conn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Close closes the underlying websocket connection.
func (c *conn) Close() error {
	if err := c.ws.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}
