// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/tokenfarm/api/farms"
	"github.com/vechain/tokenfarm/api/feeds"
	"github.com/vechain/tokenfarm/api/tokens"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins string
	GenesisID      farm.Bytes32
	EnableMetrics  bool
	// EnableReqLogger is read on every request, it can be flipped at runtime.
	EnableReqLogger *atomic.Bool
}

// New return api router
func New(rt *runtime.Runtime, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	farms.New(rt).
		Mount(router, "/farm")
	tokens.New(rt).
		Mount(router, "/tokens")
	feeds.New(rt).
		Mount(router, "/feeds")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	genesisID := opts.GenesisID.String()
	router.Use(func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-genesis-id", genesisID)
			h.ServeHTTP(w, r)
		})
	})

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = RequestLoggerHandler(handler, logger, opts.EnableReqLogger)
	}

	return handler.ServeHTTP
}
