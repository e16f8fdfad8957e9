// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity lays out contract storage the way a solidity contract would: fixed
// words, mappings hashed from a base position, and append only arrays.
package solidity

import (
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
)

// Context binds storage helpers to a contract address on a state.
type Context struct {
	address farm.Address
	state   *state.State
}

func NewContext(address farm.Address, state *state.State) *Context {
	return &Context{address, state}
}

func (c *Context) Address() farm.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// word is a single 32 byte storage slot of the bound contract.
type word struct {
	ctx *Context
	pos farm.Bytes32
}

func (w word) load() (farm.Bytes32, error) {
	return w.ctx.state.GetStorage(w.ctx.address, w.pos)
}

func (w word) store(v farm.Bytes32) {
	w.ctx.state.SetStorage(w.ctx.address, w.pos, v)
}
