// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/tokenfarm/kv"
)

const storageCacheSize = 4096

// storageBucket holds contract storage slots, keyed by address | slot.
const storageBucket = kv.Bucket("s")

// Stater is the state creator, it owns the committed store and a cache of committed slots.
type Stater struct {
	raw   kv.Store
	db    kv.Store // confined to storageBucket
	cache *lru.ARCCache
}

// NewStater create a new stater.
func NewStater(db kv.Store) *Stater {
	cache, _ := lru.NewARC(storageCacheSize)
	return &Stater{raw: db, db: storageBucket.NewStore(db), cache: cache}
}

// NewState create a new state object on top of the committed store.
func (s *Stater) NewState() *State {
	return newState(s)
}

// load reads a committed slot. Missing slots load as empty and are cached as such.
func (s *Stater) load(key storageKey) (rlp.RawValue, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		raw := v.(rlp.RawValue)
		return raw, len(raw) > 0, nil
	}
	data, err := s.db.Get(key.dbKey())
	if err != nil && !s.db.IsNotFound(err) {
		return nil, false, err
	}
	s.cache.Add(key, rlp.RawValue(data))
	return data, len(data) > 0, nil
}
