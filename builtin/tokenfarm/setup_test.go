// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin/pricefeed"
	"github.com/vechain/tokenfarm/builtin/token"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

var (
	owner    = farm.BytesToAddress([]byte("owner"))
	alice    = farm.BytesToAddress([]byte("alice"))
	bob      = farm.BytesToAddress([]byte("bob"))
	farmAddr = farm.BytesToAddress([]byte("farm"))
	glxAddr  = farm.BytesToAddress([]byte("glx"))
	wethAddr = farm.BytesToAddress([]byte("weth"))
	fauAddr  = farm.BytesToAddress([]byte("fau"))
	ethUSD   = farm.BytesToAddress([]byte("eth-usd"))
)

type fixture struct {
	st   *state.State
	farm *TokenFarm
	glx  *token.Token
	weth *token.Token
	feed *pricefeed.Feed
}

// newBareFixture deploys the tokens and an initialized farm without any allowed token or feed.
func newBareFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()

	fx := &fixture{
		st:   st,
		farm: New(farmAddr, st),
		glx:  token.New(glxAddr, st),
		weth: token.New(wethAddr, st),
		feed: pricefeed.New(ethUSD, st),
	}

	require.NoError(t, fx.glx.Initialize(farm.RewardTokenName, farm.RewardTokenSymbol, farm.RewardTokenDecimals))
	require.NoError(t, fx.glx.Mint(owner, farm.RewardTokenSupply))
	require.NoError(t, fx.glx.Transfer(owner, farmAddr, new(big.Int).Sub(farm.RewardTokenSupply, farm.KeptBalance)))

	require.NoError(t, fx.weth.Initialize("Wrapped Ether", "WETH", 18))
	require.NoError(t, fx.weth.Mint(owner, farm.Tokens(1000)))

	require.NoError(t, fx.feed.Initialize(farm.FeedDecimals, farm.InitialFeedAnswer, 0))
	require.NoError(t, fx.farm.Initialize(owner, glxAddr))
	return fx
}

// newFixture is the deployed farm: GLX and WETH allowed, both quoted by the ETH/USD feed.
func newFixture(t *testing.T) *fixture {
	fx := newBareFixture(t)
	for _, tk := range []farm.Address{glxAddr, wethAddr} {
		require.NoError(t, fx.farm.AddAllowedTokens(owner, tk))
		require.NoError(t, fx.farm.SetPriceFeedContract(owner, tk, ethUSD))
	}
	return fx
}

func (fx *fixture) stake(t *testing.T, tk *token.Token, who farm.Address, amount *big.Int) {
	t.Helper()
	require.NoError(t, tk.Approve(who, farmAddr, amount))
	require.NoError(t, fx.farm.StakeTokens(who, amount, tk.Address()))
}

func (fx *fixture) balanceOf(t *testing.T, tk *token.Token, who farm.Address) *big.Int {
	t.Helper()
	bal, err := tk.BalanceOf(who)
	require.NoError(t, err)
	return bal
}

func assertBigEqual(t *testing.T, expected, actual *big.Int) {
	t.Helper()
	assert.Equal(t, expected.String(), actual.String())
}
