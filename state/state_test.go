// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/kv"
	"github.com/vechain/tokenfarm/lvldb"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db)
}

func TestStorage(t *testing.T) {
	st := newStater(t).NewState()

	addr := farm.BytesToAddress([]byte("account1"))
	key := farm.BytesToBytes32([]byte("key"))
	value := farm.BytesToBytes32([]byte("value"))

	got, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, got.IsZero())

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	st.SetStorage(addr, key, farm.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := newStater(t).NewState()

	addr := farm.BytesToAddress([]byte("account1"))
	key := farm.BytesToBytes32([]byte("key"))

	type pair struct {
		A uint64
		B string
	}

	assert.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&pair{1, "one"})
	}))

	var p pair
	assert.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &p)
	}))
	assert.Equal(t, pair{1, "one"}, p)

	_, err := st.GetStorage(addr, key)
	assert.ErrorIs(t, err, ErrNotWord)

	err = st.DecodeStorage(addr, key, func(raw []byte) error {
		var s string
		return rlp.DecodeBytes(raw, &s)
	})
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)
}

func TestCheckpointRevert(t *testing.T) {
	st := newStater(t).NewState()

	addr := farm.BytesToAddress([]byte("account1"))
	key := farm.BytesToBytes32([]byte("key"))
	v1 := farm.BytesToBytes32([]byte("v1"))
	v2 := farm.BytesToBytes32([]byte("v2"))

	st.SetStorage(addr, key, v1)
	rev := st.NewCheckpoint()
	st.SetStorage(addr, key, v2)

	got, _ := st.GetStorage(addr, key)
	assert.Equal(t, v2, got)

	st.RevertTo(rev)
	got, _ = st.GetStorage(addr, key)
	assert.Equal(t, v1, got)

	// reverting everything keeps the state usable
	st.RevertTo(0)
	got, _ = st.GetStorage(addr, key)
	assert.True(t, got.IsZero())
	st.SetStorage(addr, key, v2)
	got, _ = st.GetStorage(addr, key)
	assert.Equal(t, v2, got)
}

func TestStageCommit(t *testing.T) {
	stater := newStater(t)
	st := stater.NewState()

	addr := farm.BytesToAddress([]byte("account1"))
	k1 := farm.BytesToBytes32([]byte("k1"))
	k2 := farm.BytesToBytes32([]byte("k2"))
	value := farm.BytesToBytes32([]byte("value"))

	st.SetStorage(addr, k1, value)
	st.SetStorage(addr, k2, value)
	st.SetStorage(addr, k2, farm.Bytes32{})

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	require.NoError(t, stage.Commit())

	fresh := stater.NewState()
	got, err := fresh.GetStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	got, err = fresh.GetStorage(addr, k2)
	assert.NoError(t, err)
	assert.True(t, got.IsZero())

	has, err := stater.db.Has(storageKey{addr, k2}.dbKey())
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestStageCommitWith(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	stater := NewStater(db)

	addr := farm.BytesToAddress([]byte("account1"))
	key := farm.BytesToBytes32([]byte("k1"))
	value := farm.BytesToBytes32([]byte("value"))
	st := stater.NewState()
	st.SetStorage(addr, key, value)

	// a failing extra aborts the whole batch
	assert.EqualError(t, st.Stage().CommitWith(func(kv.Putter) error {
		return errors.New("no room")
	}), "no room")
	has, err := stater.db.Has(storageKey{addr, key}.dbKey())
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, st.Stage().CommitWith(func(p kv.Putter) error {
		return p.Put([]byte("meta"), []byte("v1"))
	}))
	meta, err := db.Get([]byte("meta"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), meta)
	got, err := stater.NewState().GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestUncommittedChangesInvisible(t *testing.T) {
	stater := newStater(t)
	st := stater.NewState()

	addr := farm.BytesToAddress([]byte("account1"))
	key := farm.BytesToBytes32([]byte("key"))
	st.SetStorage(addr, key, farm.BytesToBytes32([]byte("value")))

	got, err := stater.NewState().GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestStageHash(t *testing.T) {
	addr := farm.BytesToAddress([]byte("account1"))
	k1 := farm.BytesToBytes32([]byte("k1"))
	k2 := farm.BytesToBytes32([]byte("k2"))
	v := farm.BytesToBytes32([]byte("value"))

	a := newStater(t).NewState()
	a.SetStorage(addr, k1, v)
	a.SetStorage(addr, k2, v)

	b := newStater(t).NewState()
	b.SetStorage(addr, k2, v)
	b.SetStorage(addr, k1, v)

	assert.Equal(t, a.Stage().Hash(), b.Stage().Hash())

	b.SetStorage(addr, k1, farm.BytesToBytes32([]byte("other")))
	assert.NotEqual(t, a.Stage().Hash(), b.Stage().Hash())
}
