// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pricefeed

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

func newFeed(t *testing.T) *Feed {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(farm.BytesToAddress([]byte("eth-usd")), state.NewStater(db).NewState())
}

func TestUninitialized(t *testing.T) {
	f := newFeed(t)
	r, err := f.LatestRoundData()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), r.ID)
	assert.Equal(t, 0, r.Answer.Sign())
}

func TestFeedRounds(t *testing.T) {
	f := newFeed(t)
	require.NoError(t, f.Initialize(farm.FeedDecimals, farm.InitialFeedAnswer, 100))

	r, err := f.LatestRoundData()
	require.NoError(t, err)
	assert.Equal(t, &Round{ID: 1, Answer: farm.InitialFeedAnswer, Decimals: 8, UpdatedAt: 100}, r)

	require.NoError(t, f.UpdateAnswer(big.NewInt(2500e8), 200))
	r, err = f.LatestRoundData()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.ID)
	assert.Equal(t, big.NewInt(2500e8), r.Answer)
	assert.Equal(t, uint64(200), r.UpdatedAt)

	dec, err := f.Decimals()
	require.NoError(t, err)
	assert.Equal(t, uint8(8), dec)
}

func TestRejectNegativeAnswer(t *testing.T) {
	f := newFeed(t)
	assert.ErrorIs(t, f.Initialize(8, big.NewInt(-1), 0), reverts.ErrInvalidAmount)

	require.NoError(t, f.Initialize(8, big.NewInt(1), 0))
	assert.ErrorIs(t, f.UpdateAnswer(big.NewInt(-5), 1), reverts.ErrInvalidAmount)

	r, err := f.LatestRoundData()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), r.Answer)
	assert.Equal(t, uint64(1), r.ID)
}
