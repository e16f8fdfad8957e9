// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access

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

var (
	owner    = farm.BytesToAddress([]byte("owner"))
	stranger = farm.BytesToAddress([]byte("stranger"))
)

func newSvc(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()
	return New(solidity.NewContext(farm.BytesToAddress([]byte("farm")), st))
}

func TestUninitializedDeniesEveryone(t *testing.T) {
	svc := newSvc(t)
	got, err := svc.Owner()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	assert.ErrorIs(t, svc.RequireOwner(farm.Address{}), reverts.ErrUnauthorized)
	assert.ErrorIs(t, svc.RequireOwner(owner), reverts.ErrUnauthorized)
}

func TestInitialize(t *testing.T) {
	svc := newSvc(t)
	assert.ErrorIs(t, svc.Initialize(farm.Address{}), reverts.ErrInvalidAddress)

	require.NoError(t, svc.Initialize(owner))
	got, err := svc.Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	assert.Error(t, svc.Initialize(stranger))
	got, _ = svc.Owner()
	assert.Equal(t, owner, got)

	assert.NoError(t, svc.RequireOwner(owner))
	assert.ErrorIs(t, svc.RequireOwner(stranger), reverts.ErrUnauthorized)
}

func TestTransferOwnership(t *testing.T) {
	svc := newSvc(t)
	require.NoError(t, svc.Initialize(owner))

	assert.ErrorIs(t, svc.TransferOwnership(stranger, stranger), reverts.ErrUnauthorized)
	assert.ErrorIs(t, svc.TransferOwnership(owner, farm.Address{}), reverts.ErrInvalidAddress)

	require.NoError(t, svc.TransferOwnership(owner, stranger))
	assert.NoError(t, svc.RequireOwner(stranger))
	assert.ErrorIs(t, svc.RequireOwner(owner), reverts.ErrUnauthorized)
}
