// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/stackedmap"
)

// ErrNotWord is returned when a slot holding an encoded structure is read as a word.
var ErrNotWord = errors.New("slot is not a word")

// Error is a storage failure, as opposed to a contract revert.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State is a journaled view of contract storage over the committed store.
// Writes reach the store only through Stage.
type State struct {
	stater  *Stater
	journal *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

func newState(stater *Stater) *State {
	return &State{
		stater:  stater,
		journal: stackedmap.New[storageKey, rlp.RawValue](stater.load),
	}
}

// GetStorage reads the word at key of addr. Unset slots read as zero.
func (s *State) GetStorage(addr farm.Address, key farm.Bytes32) (farm.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil || len(raw) == 0 {
		return farm.Bytes32{}, err
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return farm.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		return farm.Bytes32{}, &Error{ErrNotWord}
	}
	return farm.BytesToBytes32(content), nil
}

// SetStorage writes a word, stored rlp encoded without leading zeros. Zero clears the slot.
func (s *State) SetStorage(addr farm.Address, key, value farm.Bytes32) {
	var raw rlp.RawValue
	if !value.IsZero() {
		raw, _ = rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	}
	s.SetRawStorage(addr, key, raw)
}

// GetRawStorage reads the rlp encoded slot, empty when unset.
func (s *State) GetRawStorage(addr farm.Address, key farm.Bytes32) (rlp.RawValue, error) {
	raw, _, err := s.journal.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return raw, nil
}

// SetRawStorage writes an rlp encoded slot, empty clears it.
func (s *State) SetRawStorage(addr farm.Address, key farm.Bytes32, raw rlp.RawValue) {
	s.journal.Put(storageKey{addr, key}, raw)
}

// EncodeStorage writes the slot produced by enc.
func (s *State) EncodeStorage(addr farm.Address, key farm.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage reads the slot and hands it to dec, which also sees unset slots as empty input.
func (s *State) DecodeStorage(addr farm.Address, key farm.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint marks the current journal position and returns it for RevertTo.
func (s *State) NewCheckpoint() int {
	return s.journal.Push()
}

// RevertTo drops every write made since the checkpoint.
func (s *State) RevertTo(checkpoint int) {
	s.journal.PopTo(checkpoint)
	if s.journal.Depth() == 0 {
		s.journal.Push()
	}
}

// Stage collects the journaled writes, last write per slot wins.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	for k, v := range s.journal.Journal() {
		changes[k] = v
	}
	return &Stage{stater: s.stater, changes: changes}
}

type storageKey struct {
	addr farm.Address
	key  farm.Bytes32
}

// dbKey is the store key of a storage slot within storageBucket: address | slot.
func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, farm.AddressLength+32)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}
