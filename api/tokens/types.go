// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenfarm/farm"
)

type Token struct {
	Address     farm.Address          `json:"address"`
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

type Balance struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type Allowance struct {
	Allowance *math.HexOrDecimal256 `json:"allowance"`
}

type Approve struct {
	Caller  farm.Address          `json:"caller"`
	Spender farm.Address          `json:"spender"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

type Transfer struct {
	Caller farm.Address          `json:"caller"`
	To     farm.Address          `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}
