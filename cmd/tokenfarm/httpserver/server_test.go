// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/metrics"
)

func TestServerRunAndShutdown(t *testing.T) {
	srv, err := Listen("test", "127.0.0.1:0", "/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(srv.URL(), "http://127.0.0.1:"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	res, err := http.Get(srv.URL())
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second * 5):
		t.Fatal("server did not stop")
	}
}

func TestListenAddrInUse(t *testing.T) {
	srv, err := Listen("first", "127.0.0.1:0", "", http.NotFoundHandler())
	require.NoError(t, err)
	defer srv.listener.Close()

	_, err = Listen("second", srv.listener.Addr().String(), "", http.NotFoundHandler())
	assert.ErrorContains(t, err, "listen second addr")
}

func TestServersCloseOnFailedBind(t *testing.T) {
	var servers Servers
	first, err := Listen("first", "127.0.0.1:0", "", http.NotFoundHandler())
	require.NoError(t, servers.Add(first, err))
	addr := first.listener.Addr().String()

	second, err := Listen("second", addr, "", http.NotFoundHandler())
	err = servers.Add(second, err)
	assert.ErrorContains(t, err, "listen second addr")
	assert.Empty(t, servers)

	// the first listener was released
	again, err := Listen("again", addr, "", http.NotFoundHandler())
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}

func TestMetricsAndAdminServers(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("httpserver_test_count").Add(1)

	msrv, err := NewMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	var logLevel slog.LevelVar
	var apiLogs atomic.Bool
	asrv, err := NewAdminServer("127.0.0.1:0", &logLevel, &apiLogs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go msrv.Run(ctx)
	go asrv.Run(ctx)

	res, err := http.Get(msrv.URL())
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Contains(t, string(body), "tokenfarm_httpserver_test_count 1")

	res, err = http.Get(asrv.URL() + "/loglevel")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.JSONEq(t, `{"currentLevel":"INFO"}`, string(body))
}
