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

package database

import (
	"time"
)

// UserInfo is a structure representing information of a participant. The ID
// is the key under which the client announced itself; it is client-supplied
// and distinct from SessionID, the server-minted identifier of the
// connection that announced it. The broker does not enforce that the two
// match.
type UserInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserInfo creates a new UserInfo announced by the given session.
func NewUserInfo(id, username, sessionID string) *UserInfo {
	return &UserInfo{
		ID:        id,
		Username:  username,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}
}

// DeepCopy returns a deep copy of the UserInfo.
func (i *UserInfo) DeepCopy() *UserInfo {
	if i == nil {
		return nil
	}

	return &UserInfo{
		ID:        i.ID,
		Username:  i.Username,
		SessionID: i.SessionID,
		CreatedAt: i.CreatedAt,
	}
}
