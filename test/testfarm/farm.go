// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testfarm

import (
	"context"
	"math/big"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/genesis"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
)

// Well known dev network addresses.
var (
	WETH   = farm.BytesToAddress([]byte("WETH"))
	FAU    = farm.BytesToAddress([]byte("FAU"))
	EthUSD = farm.BytesToAddress([]byte("ETH/USD"))
	DaiUSD = farm.BytesToAddress([]byte("DAI/USD"))
)

// Farm is a dev network farm seeded over an in-memory store.
type Farm struct {
	db      *lvldb.LevelDB
	genesis *genesis.Genesis
	stater  *state.Stater
	rt      *runtime.Runtime
}

// NewIntegrationTestFarm seeds the dev genesis into a fresh in-memory store.
func NewIntegrationTestFarm() (*Farm, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	gene := genesis.NewDevnet()
	stater := state.NewStater(db)
	if _, err := gene.Setup(db, stater); err != nil {
		db.Close()
		return nil, err
	}
	return &Farm{
		db:      db,
		genesis: gene,
		stater:  stater,
		rt:      runtime.New(stater),
	}, nil
}

func (f *Farm) Genesis() *genesis.Genesis {
	return f.genesis
}

func (f *Farm) Stater() *state.Stater {
	return f.stater
}

func (f *Farm) Runtime() *runtime.Runtime {
	return f.rt
}

func (f *Farm) Close() error {
	return f.db.Close()
}

// Owner returns the owner set by the dev genesis.
func (f *Farm) Owner() farm.Address {
	return genesis.DevAccounts()[0].Address
}

// Account returns the address of dev account i.
func (f *Farm) Account(i int) farm.Address {
	return genesis.DevAccounts()[i].Address
}

// Approve lets the farm pull amount of token from owner.
func (f *Farm) Approve(owner, token farm.Address, amount *big.Int) error {
	return f.rt.Exec(context.Background(), func(env *runtime.Env) error {
		return env.Token(token).Approve(owner, builtin.TokenFarm.Address, amount)
	})
}

// Stake approves and stakes amount of token for identity in one commit.
func (f *Farm) Stake(identity, token farm.Address, amount *big.Int) error {
	return f.rt.Exec(context.Background(), func(env *runtime.Env) error {
		if err := env.Token(token).Approve(identity, builtin.TokenFarm.Address, amount); err != nil {
			return err
		}
		return env.Farm().StakeTokens(identity, amount, token)
	})
}

// BalanceOf reads the committed token balance of addr.
func (f *Farm) BalanceOf(token, addr farm.Address) (*big.Int, error) {
	var bal *big.Int
	err := f.rt.View(context.Background(), func(env *runtime.Env) (err error) {
		bal, err = env.Token(token).BalanceOf(addr)
		return err
	})
	return bal, err
}
