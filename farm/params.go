// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

import (
	"math/big"
)

// Ether is the number of smallest units in one whole token of 18 decimals.
var Ether = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Tokens returns n whole 18-decimal tokens in smallest units.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), Ether)
}

// farm constants.
const (
	RewardTokenName     = "Gollux"
	RewardTokenSymbol   = "GLX"
	RewardTokenDecimals = uint8(18)

	// FeedDecimals matches the precision of the USD denominated feeds the farm was designed against.
	FeedDecimals = uint8(8)
)

var (
	// RewardTokenSupply is the amount of reward token minted to the owner at genesis.
	RewardTokenSupply = Tokens(1_000_000)
	// KeptBalance is what the owner keeps, everything else funds the farm's reward reserve.
	KeptBalance = Tokens(100)
	// InitialFeedAnswer is the initial ETH/USD answer, 2000 with FeedDecimals.
	InitialFeedAnswer = new(big.Int).Mul(big.NewInt(2000), big.NewInt(1e8))
)
