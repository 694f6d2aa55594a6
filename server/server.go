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

// Package server provides the coedit server which is the main entry point
// of the coedit system. The server is responsible for starting the
// websocket server and the profiling server.
package server

import (
	gosync "sync"

	"github.com/coedit-team/coedit/server/backend"
	"github.com/coedit-team/coedit/server/broker"
	"github.com/coedit-team/coedit/server/profiling"
	"github.com/coedit-team/coedit/server/profiling/prometheus"
	"github.com/coedit-team/coedit/server/websocket"
)

// Coedit is a server of coedit. The server receives presence announcements
// and content changes from clients and propagates them to every client
// connected to the shared document.
type Coedit struct {
	lock gosync.Mutex

	conf            *Config
	backend         *backend.Backend
	broker          *broker.Broker
	wsServer        *websocket.Server
	profilingServer *profiling.Server

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Coedit.
func New(conf *Config) (*Coedit, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(conf.Backend, metrics)
	if err != nil {
		return nil, err
	}

	brk := broker.New(be)
	wsServer := websocket.NewServer(conf.WebSocket, be, brk)

	var profilingServer *profiling.Server
	if conf.Profiling != nil {
		profilingServer = profiling.NewServer(conf.Profiling, metrics)
	}

	return &Coedit{
		conf:            conf,
		backend:         be,
		broker:          brk,
		wsServer:        wsServer,
		profilingServer: profilingServer,
		shutdownCh:      make(chan struct{}),
	}, nil
}

// Start starts the server by opening the websocket port.
func (r *Coedit) Start() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.profilingServer != nil {
		if err := r.profilingServer.Start(); err != nil {
			return err
		}
	}

	return r.wsServer.Start()
}

// Shutdown shuts down this Coedit server.
func (r *Coedit) Shutdown(graceful bool) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.shutdown {
		return nil
	}

	r.wsServer.Shutdown(graceful)
	if r.profilingServer != nil {
		r.profilingServer.Shutdown(graceful)
	}

	if err := r.backend.Shutdown(); err != nil {
		return err
	}

	close(r.shutdownCh)
	r.shutdown = true
	return nil
}

// ShutdownCh returns the shutdown channel.
func (r *Coedit) ShutdownCh() <-chan struct{} {
	return r.shutdownCh
}

// WebSocketAddr returns the address of the websocket server.
func (r *Coedit) WebSocketAddr() string {
	return r.conf.WebSocketAddr()
}
