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

// ActivityInfo is a structure representing a single entry of the activity
// log. Entries are immutable and totally ordered by their sequence number,
// which matches the arrival order of the triggering event.
type ActivityInfo struct {
	Seq         uint64    `json:"seq"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeepCopy returns a deep copy of the ActivityInfo.
func (i *ActivityInfo) DeepCopy() *ActivityInfo {
	if i == nil {
		return nil
	}

	return &ActivityInfo{
		Seq:         i.Seq,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
	}
}
