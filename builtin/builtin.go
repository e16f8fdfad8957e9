// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/tokenfarm/builtin/pricefeed"
	"github.com/vechain/tokenfarm/builtin/token"
	"github.com/vechain/tokenfarm/builtin/tokenfarm"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
)

// Builtin contracts binding.
var (
	TokenFarm   = &tokenFarmContract{newContract("TokenFarm")}
	RewardToken = &tokenContract{newContract(farm.RewardTokenName)}
)

type (
	tokenFarmContract struct{ *contract }
	tokenContract     struct{ *contract }
)

func (t *tokenFarmContract) Native(state *state.State) *tokenfarm.TokenFarm {
	return tokenfarm.New(t.Address, state)
}

func (t *tokenContract) Native(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

// Token binds the token contract deployed at addr.
func Token(addr farm.Address, state *state.State) *token.Token {
	return token.New(addr, state)
}

// PriceFeed binds the price feed contract deployed at addr.
func PriceFeed(addr farm.Address, state *state.State) *pricefeed.Feed {
	return pricefeed.New(addr, state)
}

// IsContract reports whether addr belongs to a built-in contract.
// No external caller can act under such an address.
func IsContract(addr farm.Address) bool {
	return addr == TokenFarm.Address || addr == RewardToken.Address
}
