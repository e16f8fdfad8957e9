// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/kv"
)

// Stage abstracts changes that are ready to be written into the store.
type Stage struct {
	stater  *Stater
	changes map[storageKey]rlp.RawValue
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash digests the changes in store key order, so equal changes always hash the same.
func (s *Stage) Hash() farm.Bytes32 {
	keys := make([][]byte, 0, len(s.changes))
	values := make(map[string]rlp.RawValue, len(s.changes))
	for k, v := range s.changes {
		dbKey := k.dbKey()
		keys = append(keys, dbKey)
		values[string(dbKey)] = v
	}
	slices.SortFunc(keys, bytes.Compare)

	return farm.Blake2bFn(func(w io.Writer) {
		for _, k := range keys {
			w.Write(k)
			w.Write(values[string(k)])
		}
	})
}

// Commit writes all changes into the store in one batch.
func (s *Stage) Commit() error {
	return s.CommitWith(nil)
}

// CommitWith writes all changes into the store, along with the records extra puts.
// Both land in one batch. extra is handed unprefixed store keys.
func (s *Stage) CommitWith(extra func(kv.Putter) error) error {
	if len(s.changes) == 0 && extra == nil {
		return nil
	}

	batch := s.stater.raw.NewBatch()
	for k, v := range s.changes {
		key := storageBucket.Key(k.dbKey())
		var err error
		if len(v) == 0 {
			err = batch.Delete(key)
		} else {
			err = batch.Put(key, v)
		}
		if err != nil {
			return errors.Wrap(err, "stage")
		}
	}
	if extra != nil {
		if err := extra(batch); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit stage")
	}

	for k, v := range s.changes {
		s.stater.cache.Add(k, v)
	}
	return nil
}
