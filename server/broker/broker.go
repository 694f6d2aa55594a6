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

// Package broker provides the session protocol handler of coedit. It
// interprets inbound messages, mutates the presence registry, the activity
// log and the document, and fans the resulting payload out to every
// registered connection.
package broker

import (
	"context"
	"encoding/json"
	gosync "sync"

	"github.com/coedit-team/coedit/server/backend"
	"github.com/coedit-team/coedit/server/backend/connections"
	"github.com/coedit-team/coedit/server/backend/database"
	"github.com/coedit-team/coedit/server/logging"
)

// Reasons an inbound message is dropped without a broadcast.
const (
	dropReasonParseError  = "parse_error"
	dropReasonUnknownType = "unknown_type"
)

// Activity log phrasing for presence transitions.
const (
	joinedSuffix = " joined to edit the document"
	leftSuffix   = " left the document"
)

// Broker is the session protocol handler. The transport layer feeds it
// open, message and close events; the broker serializes them with a single
// mutex so that read-mutate-broadcast is atomic with respect to other
// events. Without this boundary a disconnect racing a content change could
// broadcast a stale presence map.
type Broker struct {
	mu gosync.Mutex
	be *backend.Backend
}

// New creates a new Broker backed by the given backend.
func New(be *backend.Backend) *Broker {
	return &Broker{
		be: be,
	}
}

// HandleOpen registers the given connection and returns its session
// identifier. A bare connect produces no broadcast; the session stays
// anonymous until its first user-event.
func (b *Broker) HandleOpen(ctx context.Context, conn connections.Conn) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	sessionID := b.be.Connections.Register(conn)
	b.be.Metrics.AddConnection()

	logging.From(ctx).Infof("received a new connection from %s", sessionID)
	return sessionID
}

// HandleMessage interprets one inbound message from the given connection.
// A payload that does not decode, or whose type is not recognized, is
// dropped without a state change or broadcast; the connection stays open.
func (b *Broker) HandleMessage(ctx context.Context, conn connections.Conn, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logging.From(ctx).Debugf("drop undecodable message: %v", err)
		b.be.Metrics.AddDroppedMessage(dropReasonParseError)
		return nil
	}

	switch msg.Type {
	case MessageTypeUserEvent:
		return b.handleUserEvent(ctx, conn, &msg)
	case MessageTypeContentChange:
		return b.handleContentChange(ctx, &msg)
	default:
		logging.From(ctx).Debugf("drop message of unknown type %q", msg.Type)
		b.be.Metrics.AddDroppedMessage(dropReasonUnknownType)
		return nil
	}
}

// HandleClose removes the given connection and its user record, narrates
// the departure and broadcasts the farewell. Closing an unknown connection
// is a no-op, which tolerates a double close or a close before open.
func (b *Broker) HandleClose(ctx context.Context, conn connections.Conn) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sessionID, ok := b.be.Connections.SessionID(conn)
	if !ok {
		return nil
	}

	logging.From(ctx).Infof("%s disconnected", sessionID)

	removed, err := b.be.DB.RemoveUsersBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	// A session that disconnects before announcing has no display name.
	username := latestUsername(removed)
	if _, err := b.be.DB.AppendActivity(ctx, username+leftSuffix); err != nil {
		return err
	}

	msg, err := b.buildUserEventMessage(ctx)
	if err != nil {
		return err
	}

	// The farewell is broadcast before the departing connection is
	// unregistered; the send to it is best-effort like any other.
	b.broadcast(ctx, msg)

	b.be.Connections.Unregister(conn)
	b.be.Metrics.RemoveConnection()
	return nil
}

func (b *Broker) handleUserEvent(ctx context.Context, conn connections.Conn, msg *ClientMessage) error {
	sessionID, _ := b.be.Connections.SessionID(conn)

	// The id is taken from the payload as-is; the broker does not enforce
	// that it matches the caller's own session.
	if _, err := b.be.DB.UpsertUser(ctx, msg.UserID, msg.Username, sessionID); err != nil {
		return err
	}
	if _, err := b.be.DB.AppendActivity(ctx, msg.Username+joinedSuffix); err != nil {
		return err
	}

	out, err := b.buildUserEventMessage(ctx)
	if err != nil {
		return err
	}

	b.broadcast(ctx, out)
	return nil
}

func (b *Broker) handleContentChange(ctx context.Context, msg *ClientMessage) error {
	info, err := b.be.DB.UpdateDocument(ctx, msg.Content)
	if err != nil {
		return err
	}

	activities, err := b.listActivities(ctx)
	if err != nil {
		return err
	}

	b.broadcast(ctx, NewContentChangeMessage(info.Content, activities))
	return nil
}

// buildUserEventMessage assembles a user-event broadcast from the current
// presence map and activity log.
func (b *Broker) buildUserEventMessage(ctx context.Context) (*ServerMessage, error) {
	infos, err := b.be.DB.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := make(map[string]string, len(infos))
	for _, info := range infos {
		users[info.ID] = info.Username
	}

	activities, err := b.listActivities(ctx)
	if err != nil {
		return nil, err
	}

	return NewUserEventMessage(users, activities), nil
}

func (b *Broker) listActivities(ctx context.Context) ([]string, error) {
	infos, err := b.be.DB.ListActivities(ctx)
	if err != nil {
		return nil, err
	}

	activities := make([]string, 0, len(infos))
	for _, info := range infos {
		activities = append(activities, info.Description)
	}
	return activities, nil
}

// broadcast serializes the given message once and attempts delivery to
// every registered connection. Each send is independent and best-effort; a
// failed send is logged and counted but never retried, and never removes
// the connection. Removal only happens via an explicit close event.
func (b *Broker) broadcast(ctx context.Context, msg *ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logging.From(ctx).Errorf("marshal broadcast message: %v", err)
		return
	}

	b.be.Metrics.AddBroadcast(msg.Type)
	for _, conn := range b.be.Connections.All() {
		if err := conn.Send(payload); err != nil {
			logging.From(ctx).Warnf("deliver broadcast: %v", err)
			b.be.Metrics.AddDeliveryFailure()
		}
	}
}

// latestUsername returns the display name of the most recently announced
// record among the given ones, or the empty string if there is none.
func latestUsername(infos []*database.UserInfo) string {
	var username string
	var latest *database.UserInfo
	for _, info := range infos {
		if latest == nil || info.CreatedAt.After(latest.CreatedAt) {
			latest = info
			username = info.Username
		}
	}
	return username
}
