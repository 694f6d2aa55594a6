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

package websocket

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/coedit-team/coedit/server/backend"
	"github.com/coedit-team/coedit/server/broker"
	"github.com/coedit-team/coedit/server/logging"
)

// Server accepts websocket connections and feeds their open, message and
// close events to the broker. It is the only place that knows the concrete
// transport; the broker sees connections through the Conn interface.
type Server struct {
	conf       *Config
	be         *backend.Backend
	brk        *broker.Broker
	upgrader   websocket.Upgrader
	httpServer *http.Server
	logger     logging.Logger
}

// NewServer creates a new instance of Server.
func NewServer(conf *Config, be *backend.Backend, brk *broker.Broker) *Server {
	s := &Server{
		conf: conf,
		be:   be,
		brk:  brk,
		upgrader: websocket.Upgrader{
			// The broker performs no origin-based authorization.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logging.New("websocket"),
	}

	serveMux := http.NewServeMux()
	serveMux.HandleFunc("/", s.handleUpgrade)
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", conf.Port),
		Handler: serveMux,
	}

	return s
}

// Start binds the listening port and starts serving connections. A bind
// failure is returned to the caller; nothing can proceed without it.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		s.logger.Infof("websocket server is running on port %d", s.conf.Port)
		if err := s.httpServer.Serve(lis); err != http.ErrServerClosed {
			s.logger.Errorf("HTTP server Serve: %v", err)
		}
	}()
	return nil
}

// Shutdown shuts down the server. Live websocket connections are hijacked
// from the HTTP server, so they are closed explicitly; each close runs the
// normal disconnect path in its read loop.
func (s *Server) Shutdown(graceful bool) {
	for _, conn := range s.be.Connections.All() {
		if err := conn.Close(); err != nil {
			s.logger.Warnf("close connection: %v", err)
		}
	}

	if graceful {
		if err := s.httpServer.Shutdown(context.Background()); err != nil {
			s.logger.Errorf("HTTP server Shutdown: %v", err)
		}
		return
	}

	if err := s.httpServer.Close(); err != nil {
		s.logger.Errorf("HTTP server close: %v", err)
	}
}

// handleUpgrade upgrades the HTTP request to a websocket connection and
// runs its read loop.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("upgrade connection: %v", err)
		return
	}

	go s.readLoop(newConn(ws))
}

// readLoop pumps inbound messages from one connection into the broker
// until the peer goes away, then runs the disconnect path exactly once.
func (s *Server) readLoop(c *conn) {
	ctx := logging.With(context.Background(), s.logger)

	sessionID := s.brk.HandleOpen(ctx, c)

	defer func() {
		if err := s.brk.HandleClose(ctx, c); err != nil {
			s.logger.Errorf("handle close of %s: %v", sessionID, err)
		}
		if err := c.Close(); err != nil {
			s.logger.Debugf("close %s: %v", sessionID, err)
		}
	}()

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warnf("read from %s: %v", sessionID, err)
			}
			return
		}

		if err := s.brk.HandleMessage(ctx, c, payload); err != nil {
			s.logger.Errorf("handle message from %s: %v", sessionID, err)
		}
	}
}
