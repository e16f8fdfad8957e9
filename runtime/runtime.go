// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime is the transaction boundary of the farm. Mutations are serialized and
// either fully committed to the store or fully reverted.
package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/builtin/pricefeed"
	"github.com/vechain/tokenfarm/builtin/token"
	"github.com/vechain/tokenfarm/builtin/tokenfarm"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/metrics"
	"github.com/vechain/tokenfarm/state"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metricExecDuration = metrics.LazyLoadHistogramVec("runtime_exec_duration_ms", []string{"kind", "status"}, metrics.BucketHTTPReqs)
	metricCommits      = metrics.LazyLoadCounter("runtime_commits_count")
)

// Env is what an operation sees: the state it runs on and bindings to the contracts in it.
type Env struct {
	state *state.State
	now   uint64
}

func (e *Env) State() *state.State { return e.state }

// Now is the unix time the operation started at.
func (e *Env) Now() uint64 { return e.now }

func (e *Env) Farm() *tokenfarm.TokenFarm { return builtin.TokenFarm.Native(e.state) }

func (e *Env) RewardToken() *token.Token { return builtin.RewardToken.Native(e.state) }

func (e *Env) Token(addr farm.Address) *token.Token { return builtin.Token(addr, e.state) }

func (e *Env) PriceFeed(addr farm.Address) *pricefeed.Feed { return builtin.PriceFeed(addr, e.state) }

// Runtime serializes mutations over the store and gives reads the last committed state.
type Runtime struct {
	mu     sync.RWMutex
	stater *state.Stater
	clock  func() time.Time
}

// NewEnv makes an Env over st, for callers driving a state outside of a Runtime.
func NewEnv(st *state.State, now uint64) *Env {
	return &Env{state: st, now: now}
}

// New creates a runtime over the committed state of stater.
func New(stater *state.Stater) *Runtime {
	return &Runtime{
		stater: stater,
		clock:  time.Now,
	}
}

// WithClock replaces the clock used for Env.Now.
func (rt *Runtime) WithClock(clock func() time.Time) *Runtime {
	rt.clock = clock
	return rt
}

func (rt *Runtime) env() *Env {
	return NewEnv(rt.stater.NewState(), uint64(rt.clock().Unix()))
}

// Exec runs fn as one atomic mutation. If fn fails, none of its writes are kept,
// otherwise they are committed to the store before Exec returns.
func (rt *Runtime) Exec(ctx context.Context, fn func(env *Env) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	defer func() {
		observe("exec", start, err)
	}()

	env := rt.env()
	checkpoint := env.state.NewCheckpoint()

	if err := fn(env); err != nil {
		env.state.RevertTo(checkpoint)
		logger.Debug("reverted", "error", err)
		return err
	}

	stage := env.state.Stage()
	if err := stage.Commit(); err != nil {
		logger.Error("failed to commit", "error", err)
		return errors.Wrap(err, "commit")
	}
	metricCommits().Add(1)
	logger.Trace("committed", "changes", stage.Len())
	return nil
}

// View runs fn against the last committed state. Writes made by fn are discarded.
func (rt *Runtime) View(ctx context.Context, fn func(env *Env) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	start := time.Now()
	defer func() {
		observe("view", start, err)
	}()

	return fn(rt.env())
}

func observe(kind string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	metricExecDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"kind": kind, "status": status})
}
