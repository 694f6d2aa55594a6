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

package server_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coedit-team/coedit/server"
	"github.com/coedit-team/coedit/server/profiling"
	"github.com/coedit-team/coedit/server/websocket"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults test", func(t *testing.T) {
		conf := server.NewConfig()
		assert.Equal(t, server.DefaultWebSocketPort, conf.WebSocket.Port)
		assert.Equal(t, server.DefaultProfilingPort, conf.Profiling.Port)
		assert.NoError(t, conf.Validate())
	})

	t.Run("validate test", func(t *testing.T) {
		conf := server.NewConfig()
		conf.WebSocket = &websocket.Config{Port: -1}
		assert.ErrorIs(t, conf.Validate(), websocket.ErrInvalidWebSocketPort)

		conf = server.NewConfig()
		conf.Profiling = &profiling.Config{Port: 0}
		assert.ErrorIs(t, conf.Validate(), profiling.ErrInvalidProfilingPort)
	})

	t.Run("config from file test", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "coedit.yml")
		assert.NoError(t, os.WriteFile(path, []byte(`
WebSocket:
  Port: 9000
Backend:
  InitialContent: "hello"
`), 0o600))

		conf, err := server.NewConfigFromFile(path)
		assert.NoError(t, err)
		assert.Equal(t, 9000, conf.WebSocket.Port)
		assert.Equal(t, "hello", conf.Backend.InitialContent)

		// unspecified sections fall back to defaults
		assert.Equal(t, server.DefaultProfilingPort, conf.Profiling.Port)
		assert.NoError(t, conf.Validate())
	})

	t.Run("config from missing file test", func(t *testing.T) {
		_, err := server.NewConfigFromFile(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})
}
