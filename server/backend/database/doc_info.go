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

// DocInfo is a structure representing the shared document. There is exactly
// one document per broker process; content updates are full replacements
// with last-writer-wins semantics.
type DocInfo struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeepCopy returns a deep copy of the DocInfo.
func (i *DocInfo) DeepCopy() *DocInfo {
	if i == nil {
		return nil
	}

	return &DocInfo{
		Content:   i.Content,
		UpdatedAt: i.UpdatedAt,
	}
}
