// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
	"sync/atomic"
	"time"
)

// Goes tracks the routines a service starts, so shutdown can wait for them.
type Goes struct {
	wg      sync.WaitGroup
	running atomic.Int32
}

// Go runs f in a tracked routine.
func (g *Goes) Go(f func()) {
	g.running.Add(1)
	g.wg.Go(func() {
		defer g.running.Add(-1)
		f()
	})
}

// Running returns the number of routines not yet returned.
func (g *Goes) Running() int {
	return int(g.running.Load())
}

// Wait blocks until every tracked routine has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// WaitTimeout is Wait bounded by d. It reports whether all routines returned in time.
func (g *Goes) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
