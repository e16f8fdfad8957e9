// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farms

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenfarm/farm"
)

// Farm summarizes the farm contract.
type Farm struct {
	Address       farm.Address          `json:"address"`
	Owner         farm.Address          `json:"owner"`
	RewardToken   farm.Address          `json:"rewardToken"`
	Reserve       *math.HexOrDecimal256 `json:"reserve"`
	AllowedTokens []farm.Address        `json:"allowedTokens"`
	StakerCount   uint64                `json:"stakerCount"`
}

type TokenValue struct {
	Price    *math.HexOrDecimal256 `json:"price"`
	Decimals uint8                 `json:"decimals"`
}

type PriceFeed struct {
	Feed farm.Address `json:"feed"`
}

type Staker struct {
	Index  uint64       `json:"index"`
	Staker farm.Address `json:"staker"`
}

// Stake is the stake of an account in one allowed token.
// Value is omitted when the token has no price feed.
type Stake struct {
	Token   farm.Address          `json:"token"`
	Balance *math.HexOrDecimal256 `json:"balance"`
	Value   *math.HexOrDecimal256 `json:"value,omitempty"`
}

// Account is the farm's view of an identity.
// TotalValue is omitted when any stake has no price.
type Account struct {
	Address      farm.Address          `json:"address"`
	TotalValue   *math.HexOrDecimal256 `json:"totalValue,omitempty"`
	UniqueTokens uint64                `json:"uniqueTokens"`
	Stakes       []Stake               `json:"stakes"`
}

type AddToken struct {
	Caller farm.Address `json:"caller"`
	Token  farm.Address `json:"token"`
}

type SetFeed struct {
	Caller farm.Address `json:"caller"`
	Feed   farm.Address `json:"feed"`
}

type StakeTokens struct {
	Caller farm.Address          `json:"caller"`
	Token  farm.Address          `json:"token"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type UnstakeTokens struct {
	Caller farm.Address `json:"caller"`
	Token  farm.Address `json:"token"`
}

type Caller struct {
	Caller farm.Address `json:"caller"`
}

type TransferOwnership struct {
	Caller farm.Address `json:"caller"`
	Owner  farm.Address `json:"owner"`
}

type Amount struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Reward struct {
	Staker farm.Address          `json:"staker"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}
