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

// Package backend provides the backend implementation of coedit. This
// package is responsible for managing the stores and other resources a
// broker process needs: the session database, the connection registry and
// the metrics.
package backend

import (
	"context"
	"fmt"

	"github.com/coedit-team/coedit/server/backend/connections"
	"github.com/coedit-team/coedit/server/backend/database"
	"github.com/coedit-team/coedit/server/backend/database/memory"
	"github.com/coedit-team/coedit/server/logging"
	"github.com/coedit-team/coedit/server/profiling/prometheus"
)

// Backend manages the resources of the coedit broker. All stores are
// in-memory; their lifetime is the process lifetime.
type Backend struct {
	Config *Config

	// Connections is the registry of live transport connections.
	Connections *connections.Registry

	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics

	// DB holds the presence registry, activity log and document.
	DB database.Database
}

// New creates a new instance of Backend.
func New(conf *Config, metrics *prometheus.Metrics) (*Backend, error) {
	db, err := memory.New()
	if err != nil {
		return nil, err
	}

	if conf.InitialContent != "" {
		if _, err := db.UpdateDocument(context.Background(), conf.InitialContent); err != nil {
			return nil, fmt.Errorf("set initial content: %w", err)
		}
	}

	logging.DefaultLogger().Infof("backend created: db: memory")

	return &Backend{
		Config:      conf,
		Connections: connections.NewRegistry(),
		Metrics:     metrics,
		DB:          db,
	}, nil
}

// Shutdown closes all resources of this backend.
func (b *Backend) Shutdown() error {
	return b.DB.Close()
}
