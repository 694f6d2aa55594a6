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

// Package database provides the database interface for the coedit backend.
// It stores the presence registry, the activity log and the shared document
// of a single editing session.
package database

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound is returned when the user could not be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrDocumentNotFound is returned when the document has not been
	// initialized yet.
	ErrDocumentNotFound = errors.New("document not found")
)

// Database represents a store that reads or saves coedit session data.
type Database interface {
	// Close closes all resources of this database.
	Close() error

	// UpsertUser creates or overwrites the user of the given id, recording
	// the session that announced it. Every call establishes fresh join
	// semantics, even for an id that is already present.
	UpsertUser(ctx context.Context, id, username, sessionID string) (*UserInfo, error)

	// RemoveUser removes the user of the given id. It is not an error if
	// the user is absent.
	RemoveUser(ctx context.Context, id string) error

	// RemoveUsersBySession removes every user announced by the given
	// session and returns the removed records. An empty result is not an
	// error; a session may disconnect before ever announcing.
	RemoveUsersBySession(ctx context.Context, sessionID string) ([]*UserInfo, error)

	// FindUser finds the user of the given id.
	FindUser(ctx context.Context, id string) (*UserInfo, error)

	// ListUsers returns all currently present users.
	ListUsers(ctx context.Context) ([]*UserInfo, error)

	// AppendActivity appends the given description to the activity log and
	// returns the stored entry with its assigned sequence number.
	AppendActivity(ctx context.Context, description string) (*ActivityInfo, error)

	// ListActivities returns the whole activity log in append order.
	ListActivities(ctx context.Context) ([]*ActivityInfo, error)

	// UpdateDocument replaces the whole document content with the given one.
	UpdateDocument(ctx context.Context, content string) (*DocInfo, error)

	// FindDocument returns the current document snapshot.
	FindDocument(ctx context.Context) (*DocInfo, error)
}
