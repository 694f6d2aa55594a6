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

package broker

// Message types understood by the broker. A message of any other type is
// dropped without a broadcast.
const (
	// MessageTypeUserEvent announces the presence of a participant.
	MessageTypeUserEvent = "user-event"

	// MessageTypeContentChange replaces the whole document content.
	MessageTypeContentChange = "content-change"
)

// ClientMessage is the structured record clients send to the broker.
// Missing optional fields decode to empty strings.
type ClientMessage struct {
	Type     string `json:"type"`
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Content  string `json:"content,omitempty"`
}

// UserEventData is the payload of a user-event broadcast: the current
// presence map and the whole activity log.
type UserEventData struct {
	Users        map[string]string `json:"users"`
	UserActivity []string          `json:"userActivity"`
}

// ContentChangeData is the payload of a content-change broadcast: the
// current document content and the whole activity log.
type ContentChangeData struct {
	EditorContent string   `json:"editorContent"`
	UserActivity  []string `json:"userActivity"`
}

// ServerMessage is the structured record broadcast to every registered
// connection. Data is either UserEventData or ContentChangeData, matching
// Type.
type ServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewUserEventMessage builds a user-event broadcast message.
func NewUserEventMessage(users map[string]string, activities []string) *ServerMessage {
	return &ServerMessage{
		Type: MessageTypeUserEvent,
		Data: &UserEventData{
			Users:        users,
			UserActivity: activities,
		},
	}
}

// NewContentChangeMessage builds a content-change broadcast message.
func NewContentChangeMessage(content string, activities []string) *ServerMessage {
	return &ServerMessage{
		Type: MessageTypeContentChange,
		Data: &ContentChangeData{
			EditorContent: content,
			UserActivity:  activities,
		},
	}
}
