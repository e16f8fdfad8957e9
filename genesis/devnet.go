// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/tokenfarm/farm"
)

// DevAccount is a dev network identity with its signing key.
type DevAccount struct {
	Address    farm.Address
	PrivateKey *ecdsa.PrivateKey
}

// devKeys are the well known dev network keys. Never use them outside development.
var devKeys = []string{
	"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
	"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
	"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
	"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
	"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
	"fbb9e7ba5fe9969a71c6599052237b91adeb1e5fc0c96727b66e56ff5d02f9d0",
	"547fb081e73dc2e22b4aae5c60e2970b008ac4fc3073aebc27d41ace9c4f53e9",
	"c8c53657e41a8d669349fc287f57457bd746cb1fcfc38cf94d235deb2cfca81b",
	"87e0eba9c86c494d98353800571089f316740b0cb84c9a7cdf2fe5c9997c7966",
}

// DevAccounts returns the funded identities of the dev network. Account 0 owns the farm.
var DevAccounts = sync.OnceValue(func() []DevAccount {
	accs := make([]DevAccount, 0, len(devKeys))
	for _, key := range devKeys {
		pk, err := crypto.HexToECDSA(key)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{farm.Address(crypto.PubkeyToAddress(pk.PublicKey)), pk})
	}
	return accs
})

// DevConfig is the dev network deployment: dev account 0 owns the farm, GLX, WETH and FAU are
// allowed, GLX and WETH are quoted by ETH/USD, FAU by DAI/USD. Every dev account holds
// 1000 WETH and 1000 FAU.
func DevConfig() *CustomGenesis {
	accs := DevAccounts()
	owner := accs[0].Address

	allocs := make([]Allocation, 0, len(accs))
	for _, acc := range accs {
		allocs = append(allocs, Allocation{Address: acc.Address, Amount: (*math.HexOrDecimal256)(farm.Tokens(1000))})
	}

	return &CustomGenesis{
		LaunchTime: 1700000000,
		Owner:      &owner,
		RewardToken: RewardToken{
			Supply:      (*math.HexOrDecimal256)(farm.RewardTokenSupply),
			KeptBalance: (*math.HexOrDecimal256)(farm.KeptBalance),
		},
		Tokens: []Token{
			{Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18, Allocations: allocs},
			{Symbol: "FAU", Name: "FaucetToken", Decimals: 18, Allocations: allocs},
		},
		Feeds: []Feed{
			{
				Name:     "ETH/USD",
				Decimals: farm.FeedDecimals,
				Answer:   (*math.HexOrDecimal256)(farm.InitialFeedAnswer),
				Tokens:   []string{farm.RewardTokenSymbol, "WETH"},
			},
			{
				Name:     "DAI/USD",
				Decimals: farm.FeedDecimals,
				Answer:   (*math.HexOrDecimal256)(big.NewInt(1e8)),
				Tokens:   []string{"FAU"},
			},
		},
		Allowed: []string{farm.RewardTokenSymbol, "WETH", "FAU"},
	}
}

// NewDevnet create genesis for the dev network.
func NewDevnet() *Genesis {
	gene, err := NewCustomNet(DevConfig())
	if err != nil {
		panic(err)
	}
	gene.name = "devnet"
	return gene
}
