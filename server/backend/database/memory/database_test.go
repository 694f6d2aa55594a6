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

package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coedit-team/coedit/server/backend/database"
	"github.com/coedit-team/coedit/server/backend/database/memory"
)

func TestDB(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert and find user test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		info, err := db.UpsertUser(ctx, "u1", "Alice", "s1")
		assert.NoError(t, err)
		assert.Equal(t, "u1", info.ID)
		assert.Equal(t, "Alice", info.Username)

		found, err := db.FindUser(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, "Alice", found.Username)

		_, err = db.FindUser(ctx, "unknown")
		assert.ErrorIs(t, err, database.ErrUserNotFound)
	})

	t.Run("upsert overwrites display name test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		_, err = db.UpsertUser(ctx, "u1", "Alice", "s1")
		assert.NoError(t, err)
		_, err = db.UpsertUser(ctx, "u1", "Alicia", "s1")
		assert.NoError(t, err)

		found, err := db.FindUser(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, "Alicia", found.Username)

		infos, err := db.ListUsers(ctx)
		assert.NoError(t, err)
		assert.Len(t, infos, 1)
	})

	t.Run("remove user test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		_, err = db.UpsertUser(ctx, "u1", "Alice", "s1")
		assert.NoError(t, err)

		assert.NoError(t, db.RemoveUser(ctx, "u1"))
		_, err = db.FindUser(ctx, "u1")
		assert.ErrorIs(t, err, database.ErrUserNotFound)

		// removing an absent user is a no-op
		assert.NoError(t, db.RemoveUser(ctx, "u1"))
	})

	t.Run("list users reflects only present users test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		_, err = db.UpsertUser(ctx, "u1", "Alice", "s1")
		assert.NoError(t, err)
		_, err = db.UpsertUser(ctx, "u2", "Bob", "s2")
		assert.NoError(t, err)
		assert.NoError(t, db.RemoveUser(ctx, "u1"))

		infos, err := db.ListUsers(ctx)
		assert.NoError(t, err)
		assert.Len(t, infos, 1)
		assert.Equal(t, "u2", infos[0].ID)
	})

	t.Run("remove users by session test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		_, err = db.UpsertUser(ctx, "u1", "Alice", "s1")
		assert.NoError(t, err)
		_, err = db.UpsertUser(ctx, "u2", "Bob", "s2")
		assert.NoError(t, err)

		removed, err := db.RemoveUsersBySession(ctx, "s1")
		assert.NoError(t, err)
		assert.Len(t, removed, 1)
		assert.Equal(t, "Alice", removed[0].Username)

		infos, err := db.ListUsers(ctx)
		assert.NoError(t, err)
		assert.Len(t, infos, 1)
		assert.Equal(t, "u2", infos[0].ID)

		// a session that never announced removes nothing
		removed, err = db.RemoveUsersBySession(ctx, "s3")
		assert.NoError(t, err)
		assert.Empty(t, removed)
	})

	t.Run("remove users by session removes every announced id test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		_, err = db.UpsertUser(ctx, "u1", "Alice", "s1")
		assert.NoError(t, err)
		_, err = db.UpsertUser(ctx, "u2", "Alice", "s1")
		assert.NoError(t, err)

		removed, err := db.RemoveUsersBySession(ctx, "s1")
		assert.NoError(t, err)
		assert.Len(t, removed, 2)

		infos, err := db.ListUsers(ctx)
		assert.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("activity log append order test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		for i := 0; i < 10; i++ {
			info, err := db.AppendActivity(ctx, fmt.Sprintf("entry-%d", i))
			assert.NoError(t, err)
			assert.Equal(t, uint64(i+1), info.Seq)
		}

		infos, err := db.ListActivities(ctx)
		assert.NoError(t, err)
		assert.Len(t, infos, 10)
		for i, info := range infos {
			assert.Equal(t, uint64(i+1), info.Seq)
			assert.Equal(t, fmt.Sprintf("entry-%d", i), info.Description)
		}
	})

	t.Run("document starts empty test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		info, err := db.FindDocument(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "", info.Content)
	})

	t.Run("document last writer wins test", func(t *testing.T) {
		db, err := memory.New()
		assert.NoError(t, err)

		_, err = db.UpdateDocument(ctx, "hello")
		assert.NoError(t, err)
		_, err = db.UpdateDocument(ctx, "world")
		assert.NoError(t, err)

		info, err := db.FindDocument(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "world", info.Content)
	})
}
