// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"log/slog"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/tokenfarm/api/admin"
	"github.com/vechain/tokenfarm/metrics"
)

// NewMetricsServer listens for prometheus scrapes on addr.
func NewMetricsServer(addr string) (*Server, error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return Listen("metrics", addr, "/metrics", handlers.CompressHandler(router))
}

// NewAdminServer serves the admin endpoints on addr.
func NewAdminServer(addr string, logLevel *slog.LevelVar, apiLogs *atomic.Bool) (*Server, error) {
	return Listen("admin", addr, "/admin", admin.New(logLevel, apiLogs))
}
