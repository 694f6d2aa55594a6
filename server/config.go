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

package server

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/coedit-team/coedit/server/backend"
	"github.com/coedit-team/coedit/server/profiling"
	"github.com/coedit-team/coedit/server/websocket"
)

// Below are the default values of the coedit config.
const (
	DefaultWebSocketPort = 8000
	DefaultProfilingPort = 8081
)

// Config is the configuration for creating a Coedit instance.
type Config struct {
	WebSocket *websocket.Config `yaml:"WebSocket"`
	Profiling *profiling.Config `yaml:"Profiling"`
	Backend   *backend.Config   `yaml:"Backend"`
}

// NewConfig returns a Config struct that contains reasonable defaults
// for most of the configurations.
func NewConfig() *Config {
	return &Config{
		WebSocket: &websocket.Config{
			Port: DefaultWebSocketPort,
		},
		Profiling: &profiling.Config{
			Port: DefaultProfilingPort,
		},
		Backend: &backend.Config{},
	}
}

// NewConfigFromFile returns a Config struct for the given conf file.
func NewConfigFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// WebSocketAddr returns the websocket address.
func (c *Config) WebSocketAddr() string {
	return fmt.Sprintf("localhost:%d", c.WebSocket.Port)
}

// Validate returns an error if the provided Config is invalidated.
func (c *Config) Validate() error {
	if err := c.WebSocket.Validate(); err != nil {
		return err
	}

	if err := c.Profiling.Validate(); err != nil {
		return err
	}

	if err := c.Backend.Validate(); err != nil {
		return err
	}

	return nil
}

// ensureDefaultValue sets the value of an option to its default when the
// user does not provide it.
func (c *Config) ensureDefaultValue() {
	if c.WebSocket == nil {
		c.WebSocket = &websocket.Config{}
	}
	if c.WebSocket.Port == 0 {
		c.WebSocket.Port = DefaultWebSocketPort
	}

	if c.Profiling == nil {
		c.Profiling = &profiling.Config{}
	}
	if c.Profiling.Port == 0 {
		c.Profiling.Port = DefaultProfilingPort
	}

	if c.Backend == nil {
		c.Backend = &backend.Config{}
	}
}
