// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokenfarm/api"
	"github.com/vechain/tokenfarm/cmd/tokenfarm/httpserver"
	"github.com/vechain/tokenfarm/genesis"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/metrics"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	// flags read their TOKENFARM_* variables after .env is loaded
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fatal(fmt.Sprintf("load .env: %v", err))
	}

	app := cli.App{
		Version:   fullVersion(),
		Name:      "TokenFarm",
		Usage:     "Staking farm paying rewards on the USD value of staked tokens",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	logLevel := initLogger(ctx)

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	db, dir, err := openDB(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing farm database..."); db.Close() }()

	stater := state.NewStater(db)
	seeded, err := gene.Setup(db, stater)
	if err != nil {
		return err
	}
	rt := runtime.New(stater)

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(rt, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		GenesisID:       gene.ID(),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger: apiLogs,
	})

	var servers httpserver.Servers
	apiSrv, err := httpserver.Listen("api", ctx.String(apiAddrFlag.Name), "/", handler)
	if err := servers.Add(apiSrv, err); err != nil {
		return err
	}

	metricsURL := "Disabled"
	if ctx.Bool(enableMetricsFlag.Name) {
		srv, err := httpserver.NewMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err := servers.Add(srv, err); err != nil {
			return err
		}
		metricsURL = srv.URL()
	}

	adminURL := "Disabled"
	if ctx.Bool(enableAdminFlag.Name) {
		srv, err := httpserver.NewAdminServer(ctx.String(adminAddrFlag.Name), logLevel, apiLogs)
		if err := servers.Add(srv, err); err != nil {
			return err
		}
		adminURL = srv.URL()
	}

	printStartupMessage(gene, seeded, dir, apiSrv.URL(), metricsURL, adminURL)

	group, groupCtx := errgroup.WithContext(exitSignal)
	for _, srv := range servers {
		group.Go(func() error {
			return srv.Run(groupCtx)
		})
	}
	return group.Wait()
}

func printStartupMessage(gene *genesis.Genesis, seeded bool, dir, apiURL, metricsURL, adminURL string) {
	status := "loaded"
	if seeded {
		status = "seeded"
	}
	fmt.Printf(`Starting %v
    Network      [ %v %v ]
    State        [ %v @%v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
    Admin        [ %v ]
`,
		"TokenFarm/"+fullVersion(),
		gene.ID(), gene.Name(),
		status, time.Now().Format(time.RFC3339),
		dir,
		apiURL,
		metricsURL,
		adminURL)
}
