// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
)

func TestDevAccounts(t *testing.T) {
	accs := DevAccounts()
	require.Len(t, accs, 10)
	assert.Equal(t, "0xf077b491b355e64048ce21e3a6fc4751eeea77fa", accs[0].Address.String())
	assert.Equal(t, accs, DevAccounts())
}

func TestDevnet(t *testing.T) {
	gene := NewDevnet()
	assert.Equal(t, "devnet", gene.Name())

	// deterministic
	assert.Equal(t, gene.ID(), NewDevnet().ID())

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	stater := state.NewStater(db)

	seeded, err := gene.Setup(db, stater)
	require.NoError(t, err)
	assert.True(t, seeded)

	owner := DevAccounts()[0].Address
	weth := farm.BytesToAddress([]byte("WETH"))
	fau := farm.BytesToAddress([]byte("FAU"))

	rt := runtime.New(stater)
	require.NoError(t, rt.View(context.Background(), func(env *runtime.Env) error {
		f := env.Farm()

		got, err := f.Owner()
		require.NoError(t, err)
		assert.Equal(t, owner, got)

		allowed, err := f.AllowedTokens()
		require.NoError(t, err)
		assert.Equal(t, []farm.Address{builtin.RewardToken.Address, weth, fau}, allowed)

		price, decimals, err := f.GetTokenValue(builtin.RewardToken.Address)
		require.NoError(t, err)
		assert.Equal(t, farm.InitialFeedAnswer.String(), price.String())
		assert.Equal(t, farm.FeedDecimals, decimals)

		price, _, err = f.GetTokenValue(fau)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1e8).String(), price.String())

		bal, err := env.RewardToken().BalanceOf(owner)
		require.NoError(t, err)
		assert.Equal(t, farm.KeptBalance.String(), bal.String())

		reserve, err := f.Reserve()
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Sub(farm.RewardTokenSupply, farm.KeptBalance).String(), reserve.String())

		for _, acc := range DevAccounts() {
			bal, err := env.Token(weth).BalanceOf(acc.Address)
			require.NoError(t, err)
			assert.Equal(t, farm.Tokens(1000).String(), bal.String())
		}

		md, err := env.Token(fau).Metadata()
		require.NoError(t, err)
		assert.Equal(t, "FAU", md.Symbol)
		return nil
	}))

	// seeding again is a no-op
	seeded, err = gene.Setup(db, stater)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestSetupMismatch(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	stater := state.NewStater(db)

	_, err = NewDevnet().Setup(db, stater)
	require.NoError(t, err)

	cfg := DevConfig()
	cfg.LaunchTime++
	other, err := NewCustomNet(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, NewDevnet().ID(), other.ID())

	_, err = other.Setup(db, stater)
	assert.ErrorContains(t, err, "genesis mismatch")
}

func TestSetupAtomic(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	stater := state.NewStater(db)

	broken := NewDevnet()
	broken.id[0] ^= 0xff
	_, err = broken.Setup(db, stater)
	assert.ErrorContains(t, err, "unexpected id")

	// neither the genesis state nor its ID were written
	has, err := db.Has(metaBucket.Key(genesisKey))
	require.NoError(t, err)
	assert.False(t, has)
	require.NoError(t, runtime.New(state.NewStater(db)).View(context.Background(), func(env *runtime.Env) error {
		owner, err := env.Farm().Owner()
		require.NoError(t, err)
		assert.True(t, owner.IsZero())
		return nil
	}))

	gene := NewDevnet()
	seeded, err := gene.Setup(db, state.NewStater(db))
	require.NoError(t, err)
	assert.True(t, seeded)
	stored, err := db.Get(metaBucket.Key(genesisKey))
	require.NoError(t, err)
	assert.Equal(t, gene.ID().Bytes(), stored)
}

const customYAML = `
launchTime: 1
owner: "0x0000000000000000000000000000000000000abc"
rewardToken:
  supply: 1000
  keptBalance: 0x0a
tokens:
  - symbol: LINK
    name: Chainlink
    decimals: 18
    allocations:
      - address: "0x0000000000000000000000000000000000000def"
        amount: 500
feeds:
  - name: LINK/USD
    decimals: 8
    answer: 1500000000
    tokens: [LINK]
allowed: [LINK]
`

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCustomNet(t *testing.T) {
	gen, err := LoadCustomGenesis(writeFile(t, customYAML))
	require.NoError(t, err)

	owner := farm.MustParseAddress("0x0000000000000000000000000000000000000abc")
	holder := farm.MustParseAddress("0x0000000000000000000000000000000000000def")
	link := farm.BytesToAddress([]byte("LINK"))

	assert.Equal(t, owner, *gen.Owner)
	assert.Equal(t, "1000", (*big.Int)(gen.RewardToken.Supply).String())
	assert.Equal(t, "10", (*big.Int)(gen.RewardToken.KeptBalance).String())

	gene, err := NewCustomNet(gen)
	require.NoError(t, err)
	assert.Equal(t, "customnet", gene.Name())

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	stater := state.NewStater(db)
	require.NoError(t, gene.Build(stater))

	require.NoError(t, runtime.New(stater).View(context.Background(), func(env *runtime.Env) error {
		allowed, err := env.Farm().AllowedTokens()
		require.NoError(t, err)
		assert.Equal(t, []farm.Address{link}, allowed)

		bal, err := env.Token(link).BalanceOf(holder)
		require.NoError(t, err)
		assert.Equal(t, "500", bal.String())

		reserve, err := env.Farm().Reserve()
		require.NoError(t, err)
		assert.Equal(t, "990", reserve.String())

		r, err := env.PriceFeed(farm.BytesToAddress([]byte("LINK/USD"))).LatestRoundData()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), r.UpdatedAt)
		return nil
	}))
}

func TestLoadCustomGenesisUnknownField(t *testing.T) {
	_, err := LoadCustomGenesis(writeFile(t, "owner: \"0x0000000000000000000000000000000000000abc\"\ngasLimit: 1\n"))
	assert.Error(t, err)
}

func TestCustomNetValidation(t *testing.T) {
	addr := farm.BytesToAddress([]byte("owner"))
	tests := []struct {
		name string
		edit func(g *CustomGenesis)
		want string
	}{
		{"no owner", func(g *CustomGenesis) { g.Owner = nil }, "owner is required"},
		{"zero owner", func(g *CustomGenesis) { g.Owner = &farm.Address{} }, "owner is required"},
		{"kept exceeds supply", func(g *CustomGenesis) {
			g.RewardToken.Supply = (*math.HexOrDecimal256)(big.NewInt(1))
		}, "exceeds supply"},
		{"duplicated symbol", func(g *CustomGenesis) { g.Tokens = append(g.Tokens, Token{Symbol: "WETH"}) }, "duplicated token symbol"},
		{"reward symbol", func(g *CustomGenesis) { g.Tokens = append(g.Tokens, Token{Symbol: "GLX"}) }, "duplicated token symbol"},
		{"address clash", func(g *CustomGenesis) {
			g.Tokens = append(g.Tokens, Token{Symbol: "X", Address: &builtinFarm})
		}, "already used"},
		{"unknown feed token", func(g *CustomGenesis) { g.Feeds[0].Tokens = []string{"BTC"} }, "unknown token"},
		{"negative answer", func(g *CustomGenesis) { g.Feeds[0].Answer = (*math.HexOrDecimal256)(big.NewInt(-1)) }, "non-negative"},
		{"unknown allowed token", func(g *CustomGenesis) { g.Allowed = append(g.Allowed, "BTC") }, "unknown token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DevConfig()
			g.Owner = &addr
			tt.edit(g)
			_, err := NewCustomNet(g)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

var builtinFarm = builtin.TokenFarm.Address
