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

// Package memory implements the database interface using an in-memory
// database. Session data lives for the process lifetime only; durable
// persistence is deliberately out of scope.
package memory

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/coedit-team/coedit/server/backend/database"
)

// docKey is the key of the single shared document row.
const docKey = "document"

// docRecord wraps DocInfo with an ID for memory database storage.
type docRecord struct {
	ID   string
	Info *database.DocInfo
}

// DB is an in-memory database backed by go-memdb.
type DB struct {
	db *memdb.MemDB

	// nextSeq is the sequence number handed to the next activity entry.
	nextSeq uint64
}

// New returns a new in-memory database with an empty document.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	txn := memDB.Txn(true)
	if err := txn.Insert(tblDocuments, &docRecord{
		ID:   docKey,
		Info: &database.DocInfo{},
	}); err != nil {
		txn.Abort()
		return nil, fmt.Errorf("initialize document: %w", err)
	}
	txn.Commit()

	return &DB{
		db: memDB,
	}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// UpsertUser creates or overwrites the user of the given id.
func (d *DB) UpsertUser(
	_ context.Context,
	id, username, sessionID string,
) (*database.UserInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := database.NewUserInfo(id, username, sessionID)
	if err := txn.Insert(tblUsers, info); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// RemoveUser removes the user of the given id. Removing an absent user is
// not an error.
func (d *DB) RemoveUser(_ context.Context, id string) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblUsers, "id", id)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if raw == nil {
		return nil
	}

	if err := txn.Delete(tblUsers, raw); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}

	txn.Commit()
	return nil
}

// RemoveUsersBySession removes every user announced by the given session
// and returns the removed records.
func (d *DB) RemoveUsersBySession(
	_ context.Context,
	sessionID string,
) ([]*database.UserInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(tblUsers, "session_id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("find users by session: %w", err)
	}

	var infos []*database.UserInfo
	for raw := it.Next(); raw != nil; raw = it.Next() {
		infos = append(infos, raw.(*database.UserInfo).DeepCopy())
	}

	for _, info := range infos {
		if err := txn.Delete(tblUsers, &database.UserInfo{ID: info.ID}); err != nil {
			return nil, fmt.Errorf("remove user: %w", err)
		}
	}

	txn.Commit()
	return infos, nil
}

// FindUser finds the user of the given id.
func (d *DB) FindUser(_ context.Context, id string) (*database.UserInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblUsers, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrUserNotFound)
	}

	// NOTE: When retrieving objects from go-memdb, references to the stored
	// objects are returned, so a deep copy is needed to keep them immutable.
	return raw.(*database.UserInfo).DeepCopy(), nil
}

// ListUsers returns all currently present users.
func (d *DB) ListUsers(_ context.Context) ([]*database.UserInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tblUsers, "id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var infos []*database.UserInfo
	for raw := it.Next(); raw != nil; raw = it.Next() {
		infos = append(infos, raw.(*database.UserInfo).DeepCopy())
	}
	return infos, nil
}

// AppendActivity appends the given description to the activity log.
func (d *DB) AppendActivity(
	_ context.Context,
	description string,
) (*database.ActivityInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := &database.ActivityInfo{
		Seq:         atomic.AddUint64(&d.nextSeq, 1),
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := txn.Insert(tblActivities, info); err != nil {
		return nil, fmt.Errorf("append activity: %w", err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// ListActivities returns the whole activity log in append order.
func (d *DB) ListActivities(_ context.Context) ([]*database.ActivityInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tblActivities, "id")
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	var infos []*database.ActivityInfo
	for raw := it.Next(); raw != nil; raw = it.Next() {
		infos = append(infos, raw.(*database.ActivityInfo).DeepCopy())
	}
	return infos, nil
}

// UpdateDocument replaces the whole document content with the given one.
func (d *DB) UpdateDocument(_ context.Context, content string) (*database.DocInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := &database.DocInfo{
		Content:   content,
		UpdatedAt: time.Now(),
	}
	if err := txn.Insert(tblDocuments, &docRecord{
		ID:   docKey,
		Info: info,
	}); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	txn.Commit()
	return info.DeepCopy(), nil
}

// FindDocument returns the current document snapshot.
func (d *DB) FindDocument(_ context.Context) (*database.DocInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblDocuments, "id", docKey)
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	if raw == nil {
		return nil, database.ErrDocumentNotFound
	}

	return raw.(*docRecord).Info.DeepCopy(), nil
}
