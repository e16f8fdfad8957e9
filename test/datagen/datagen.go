// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand/v2"

	"github.com/vechain/tokenfarm/farm"
)

func RandomAddress() (addr farm.Address) {
	rand.Read(addr[:])
	return
}

func RandomHash() (b farm.Bytes32) {
	rand.Read(b[:])
	return
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// RandomAmount returns a positive amount of at most max whole tokens.
func RandomAmount(max int) *big.Int {
	return farm.Tokens(int64(RandIntN(max) + 1))
}
