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

// Package connections provides the registry of live transport connections.
// The registry maps connections to server-minted session identifiers and is
// the fan-out set for broadcasts. The transport layer owns the lifetime of
// each connection; the registry only holds references.
package connections

import (
	"github.com/rs/xid"

	"github.com/coedit-team/coedit/pkg/cmap"
)

// Conn is a narrow view of a transport connection. It is the only surface
// the registry and the broker need, so they stay independent of the
// concrete websocket implementation.
type Conn interface {
	// Send delivers the given payload to the peer.
	Send(payload []byte) error

	// Close closes the connection.
	Close() error
}

// Registry maps live connections to their session identifiers. All
// operations are total; registering always succeeds and unregistering an
// absent connection is a no-op.
type Registry struct {
	conns *cmap.Map[Conn, string]
}

// NewRegistry creates a new Registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: cmap.New[Conn, string](),
	}
}

// Register stores the given connection and returns its freshly minted
// session identifier.
func (r *Registry) Register(conn Conn) string {
	sessionID := xid.New().String()
	r.conns.Set(conn, sessionID)
	return sessionID
}

// Unregister removes the given connection. It is not an error if the
// connection is already absent.
func (r *Registry) Unregister(conn Conn) {
	r.conns.Delete(conn)
}

// SessionID returns the session identifier of the given connection.
func (r *Registry) SessionID(conn Conn) (string, bool) {
	return r.conns.Get(conn)
}

// All returns all registered connections. The order is not significant; it
// is used purely for broadcast fan-out.
func (r *Registry) All() []Conn {
	return r.conns.Keys()
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return r.conns.Len()
}
