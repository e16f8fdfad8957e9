// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

func TestAddresses(t *testing.T) {
	assert.Equal(t, farm.BytesToAddress([]byte("TokenFarm")), TokenFarm.Address)
	assert.Equal(t, farm.BytesToAddress([]byte("Gollux")), RewardToken.Address)
	assert.NotEqual(t, TokenFarm.Address, RewardToken.Address)
}

func TestIsContract(t *testing.T) {
	assert.True(t, IsContract(TokenFarm.Address))
	assert.True(t, IsContract(RewardToken.Address))
	assert.False(t, IsContract(farm.Address{}))
	assert.False(t, IsContract(farm.BytesToAddress([]byte("acct1"))))
}

func TestNativeBindings(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	st := state.NewStater(db).NewState()

	assert.Equal(t, TokenFarm.Address, TokenFarm.Native(st).Address())
	assert.Equal(t, RewardToken.Address, RewardToken.Native(st).Address())

	weth := farm.BytesToAddress([]byte("WETH"))
	assert.Equal(t, weth, Token(weth, st).Address())
	assert.Equal(t, weth, PriceFeed(weth, st).Address())
}
