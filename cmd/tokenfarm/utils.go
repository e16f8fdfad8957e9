// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokenfarm/genesis"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/lvldb"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// verbosityLevel maps the verbosity flag to a log level, 0 is crit and 5 is trace.
func verbosityLevel(verbosity uint) slog.Level {
	switch verbosity {
	case 0:
		return log.LevelCrit
	case 1:
		return log.LevelError
	case 2:
		return log.LevelWarn
	case 3:
		return log.LevelInfo
	case 4:
		return log.LevelDebug
	default:
		return log.LevelTrace
	}
}

func initLogger(ctx *cli.Context) *slog.LevelVar {
	var lvl slog.LevelVar
	lvl.Set(verbosityLevel(ctx.Uint(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &lvl, useColor)
	}
	log.SetDefault(handler)
	return &lvl
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	gen, err := genesis.LoadCustomGenesis(path)
	if err != nil {
		return nil, err
	}
	gene, err := genesis.NewCustomNet(gen)
	if err != nil {
		return nil, errors.WithMessage(err, "build genesis")
	}
	return gene, nil
}

// instanceDir is the directory holding the state seeded by gene, one per genesis.
func instanceDir(dataDir string, gene *genesis.Genesis) string {
	return filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
}

func openDB(ctx *cli.Context, gene *genesis.Genesis) (*lvldb.LevelDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := lvldb.NewMem()
		return db, "Memory", err
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	dir := instanceDir(dataDir, gene)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", errors.Wrapf(err, "create instance dir [%v]", dir)
	}
	db, err := lvldb.New(filepath.Join(dir, "farm.db"), lvldb.Options{
		CacheMB: ctx.Int(cacheFlag.Name),
		Handles: 64,
	})
	if err != nil {
		return nil, "", err
	}
	return db, dir, nil
}

// handleExitSignal returns a context canceled on the first interrupt or terminate signal.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.tokenfarm")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.tokenfarm")
		default:
			return filepath.Join(home, ".org.vechain.tokenfarm")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
