// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/co"
	"github.com/vechain/tokenfarm/log"
)

var logger = log.WithContext("pkg", "httpserver")

const shutdownTimeout = 5 * time.Second

// Server is a http server bound to its listener.
type Server struct {
	name     string
	path     string
	listener net.Listener
	srv      *http.Server
}

// Listen binds addr for the named service. path is only used to report the service URL.
func Listen(name, addr, path string, handler http.Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	return &Server{
		name:     name,
		path:     path,
		listener: listener,
		srv:      &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second},
	}, nil
}

// URL returns the address the service is reachable at.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String() + s.path
}

// Close releases the listener of a server that never ran.
func (s *Server) Close() error {
	return s.listener.Close()
}

// Servers are the servers of one process, bound one after the other.
type Servers []*Server

// Add appends srv, the result of a bind. When the bind failed, every server
// already added is closed and err is returned.
func (ss *Servers) Add(srv *Server, err error) error {
	if err != nil {
		ss.Close()
		return err
	}
	*ss = append(*ss, srv)
	return nil
}

// Close releases the listeners of servers that never ran.
func (ss *Servers) Close() {
	for _, srv := range *ss {
		if err := srv.Close(); err != nil {
			logger.Debug("close listener", "server", srv.name, "err", err)
		}
	}
	*ss = nil
}

// Run serves until ctx is done, then shuts the server down gracefully.
// It fails only when serving stops for another reason.
func (s *Server) Run(ctx context.Context) error {
	var goes co.Goes
	served := make(chan error, 1)
	goes.Go(func() {
		served <- s.srv.Serve(s.listener)
	})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown timed out, closing", "server", s.name, "err", err)
			s.srv.Close()
		}
		if !goes.WaitTimeout(shutdownTimeout) {
			logger.Warn("serve routine still running", "server", s.name, "routines", goes.Running())
		}
		logger.Info("server stopped", "server", s.name)
		return nil
	case err := <-served:
		goes.Wait()
		return errors.Wrapf(err, "%s server", s.name)
	}
}
