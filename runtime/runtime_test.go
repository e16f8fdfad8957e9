// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

var (
	owner  = farm.BytesToAddress([]byte("owner"))
	alice  = farm.BytesToAddress([]byte("alice"))
	weth   = farm.BytesToAddress([]byte("WETH"))
	ethUSD = farm.BytesToAddress([]byte("ETH/USD"))
)

func newRuntime(t *testing.T) *Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rt := New(state.NewStater(db)).WithClock(func() time.Time { return time.Unix(1000, 0) })
	require.NoError(t, rt.Exec(context.Background(), func(env *Env) error {
		glx := env.RewardToken()
		if err := glx.Initialize(farm.RewardTokenName, farm.RewardTokenSymbol, farm.RewardTokenDecimals); err != nil {
			return err
		}
		if err := glx.Mint(owner, farm.RewardTokenSupply); err != nil {
			return err
		}
		if err := glx.Transfer(owner, builtin.TokenFarm.Address, new(big.Int).Sub(farm.RewardTokenSupply, farm.KeptBalance)); err != nil {
			return err
		}
		if err := env.Token(weth).Mint(owner, farm.Tokens(10)); err != nil {
			return err
		}
		if err := env.PriceFeed(ethUSD).Initialize(farm.FeedDecimals, farm.InitialFeedAnswer, env.Now()); err != nil {
			return err
		}
		f := env.Farm()
		if err := f.Initialize(owner, builtin.RewardToken.Address); err != nil {
			return err
		}
		for _, tk := range []farm.Address{builtin.RewardToken.Address, weth} {
			if err := f.AddAllowedTokens(owner, tk); err != nil {
				return err
			}
			if err := f.SetPriceFeedContract(owner, tk, ethUSD); err != nil {
				return err
			}
		}
		return nil
	}))
	return rt
}

func stakingBalance(t *testing.T, rt *Runtime, token, who farm.Address) *big.Int {
	var bal *big.Int
	require.NoError(t, rt.View(context.Background(), func(env *Env) (err error) {
		bal, err = env.Farm().StakingBalance(token, who)
		return
	}))
	return bal
}

func TestExecCommits(t *testing.T) {
	rt := newRuntime(t)

	require.NoError(t, rt.Exec(context.Background(), func(env *Env) error {
		if err := env.Token(weth).Approve(owner, builtin.TokenFarm.Address, farm.Tokens(1)); err != nil {
			return err
		}
		return env.Farm().StakeTokens(owner, farm.Tokens(1), weth)
	}))

	assert.Equal(t, farm.Tokens(1).String(), stakingBalance(t, rt, weth, owner).String())

	require.NoError(t, rt.View(context.Background(), func(env *Env) error {
		r, err := env.PriceFeed(ethUSD).LatestRoundData()
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), r.UpdatedAt)
		return nil
	}))
}

func TestExecRevertsOnError(t *testing.T) {
	rt := newRuntime(t)

	// approval and transfer succeed, the stake itself fails: nothing is kept
	err := rt.Exec(context.Background(), func(env *Env) error {
		if err := env.Token(weth).Approve(owner, builtin.TokenFarm.Address, farm.Tokens(1)); err != nil {
			return err
		}
		if err := env.Token(weth).Transfer(owner, alice, farm.Tokens(1)); err != nil {
			return err
		}
		return env.Farm().StakeTokens(owner, farm.Tokens(1), farm.BytesToAddress([]byte("FAU")))
	})
	assert.ErrorIs(t, err, reverts.ErrTokenNotAllowed)

	require.NoError(t, rt.View(context.Background(), func(env *Env) error {
		allowed, err := env.Token(weth).Allowance(owner, builtin.TokenFarm.Address)
		require.NoError(t, err)
		assert.Equal(t, 0, allowed.Sign())

		bal, err := env.Token(weth).BalanceOf(alice)
		require.NoError(t, err)
		assert.Equal(t, 0, bal.Sign())
		return nil
	}))
}

func TestIssueTokensBatchIsAtomic(t *testing.T) {
	rt := newRuntime(t)
	ctx := context.Background()

	require.NoError(t, rt.Exec(ctx, func(env *Env) error {
		if err := env.Token(weth).Transfer(owner, alice, farm.Tokens(5)); err != nil {
			return err
		}
		for _, who := range []farm.Address{owner, alice} {
			if err := env.Token(weth).Approve(who, builtin.TokenFarm.Address, farm.Tokens(5)); err != nil {
				return err
			}
		}
		// owner's reward fits in the reserve, alice's does not
		if err := env.Farm().StakeTokens(owner, big.NewInt(1), weth); err != nil {
			return err
		}
		if err := env.Farm().StakeTokens(alice, farm.Tokens(5), weth); err != nil {
			return err
		}
		return env.PriceFeed(ethUSD).UpdateAnswer(new(big.Int).Mul(big.NewInt(1e9), big.NewInt(1e8)), env.Now())
	}))

	err := rt.Exec(ctx, func(env *Env) error {
		_, err := env.Farm().IssueTokens(owner)
		return err
	})
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)

	require.NoError(t, rt.View(ctx, func(env *Env) error {
		bal, err := env.RewardToken().BalanceOf(owner)
		require.NoError(t, err)
		assert.Equal(t, farm.KeptBalance.String(), bal.String())
		return nil
	}))
}

func TestViewDiscardsWrites(t *testing.T) {
	rt := newRuntime(t)
	ctx := context.Background()

	require.NoError(t, rt.View(ctx, func(env *Env) error {
		return env.Token(weth).Mint(alice, big.NewInt(1))
	}))
	require.NoError(t, rt.Exec(ctx, func(env *Env) error { return nil }))

	require.NoError(t, rt.View(ctx, func(env *Env) error {
		bal, err := env.Token(weth).BalanceOf(alice)
		require.NoError(t, err)
		assert.Equal(t, 0, bal.Sign())
		return nil
	}))
}

func TestCancelledContext(t *testing.T) {
	rt := newRuntime(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := rt.Exec(ctx, func(env *Env) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	err = rt.View(ctx, func(env *Env) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestConcurrentStakes(t *testing.T) {
	rt := newRuntime(t)
	ctx := context.Background()

	require.NoError(t, rt.Exec(ctx, func(env *Env) error {
		return env.Token(weth).Approve(owner, builtin.TokenFarm.Address, farm.Tokens(10))
	}))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rt.Exec(ctx, func(env *Env) error {
				return env.Farm().StakeTokens(owner, farm.Tokens(1), weth)
			}))
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rt.View(ctx, func(env *Env) error {
				_, err := env.Farm().GetUserTotalValue(owner)
				return err
			}))
		}()
	}
	wg.Wait()

	assert.Equal(t, farm.Tokens(10).String(), stakingBalance(t, rt, weth, owner).String())

	err := rt.Exec(ctx, func(env *Env) error {
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
}
