// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allowlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

func newSvc(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()
	return New(solidity.NewContext(farm.BytesToAddress([]byte("farm")), st))
}

func TestAddIsIdempotent(t *testing.T) {
	svc := newSvc(t)
	weth := farm.BytesToAddress([]byte("weth"))

	ok, err := svc.IsAllowed(weth)
	require.NoError(t, err)
	assert.False(t, ok)

	added, err := svc.Add(weth)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.Add(weth)
	require.NoError(t, err)
	assert.False(t, added)

	ok, err = svc.IsAllowed(weth)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := svc.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestInsertionOrder(t *testing.T) {
	svc := newSvc(t)
	tokens := []farm.Address{
		farm.BytesToAddress([]byte("glx")),
		farm.BytesToAddress([]byte("weth")),
		farm.BytesToAddress([]byte("fau")),
	}
	for _, tk := range tokens {
		_, err := svc.Add(tk)
		require.NoError(t, err)
	}
	_, err := svc.Add(tokens[0])
	require.NoError(t, err)

	all, err := svc.All()
	require.NoError(t, err)
	assert.Equal(t, tokens, all)

	for i, tk := range tokens {
		got, err := svc.At(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, tk, got)
	}
	_, err = svc.At(3)
	assert.ErrorIs(t, err, reverts.ErrIndexOutOfRange)
}

func TestRejectZeroToken(t *testing.T) {
	svc := newSvc(t)
	_, err := svc.Add(farm.Address{})
	assert.ErrorIs(t, err, reverts.ErrInvalidAddress)
}
