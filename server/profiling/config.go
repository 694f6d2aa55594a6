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

// Package profiling serves the broker's operational endpoints: the
// Prometheus metrics of the session broker and, when enabled, pprof.
package profiling

import (
	"errors"
	"fmt"
)

// ErrInvalidProfilingPort occurs when the configured profiling port is
// outside the valid range.
var ErrInvalidProfilingPort = errors.New("invalid port number for profiling server")

// Config holds the settings of the profiling server.
type Config struct {
	// Port is the TCP port the metrics and pprof endpoints listen on.
	Port int `yaml:"Port"`

	// EnablePprof mounts the /debug/pprof handlers when true.
	EnablePprof bool `yaml:"EnablePprof"`
}

// Validate checks that the configured port is usable.
func (c *Config) Validate() error {
	if c.Port < 1 || 65535 < c.Port {
		return fmt.Errorf("must be between 1 and 65535, given %d: %w", c.Port, ErrInvalidProfilingPort)
	}

	return nil
}
