// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package feeds

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenfarm/farm"
)

// Round is the latest answer of a price feed.
type Round struct {
	Feed      farm.Address          `json:"feed"`
	RoundID   uint64                `json:"roundId"`
	Answer    *math.HexOrDecimal256 `json:"answer"`
	Decimals  uint8                 `json:"decimals"`
	UpdatedAt uint64                `json:"updatedAt"`
}

type UpdateAnswer struct {
	Answer *math.HexOrDecimal256 `json:"answer"`
}
