// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
)

// ErrIndexOutOfRange is returned when reading past the end of an Array.
var ErrIndexOutOfRange = errors.New("index out of range")

type index uint64

func (i index) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(i))
	return b[:]
}

// Array is an append only dynamic array, similar to a storage array in Solidity.
// The length lives at `pos`, elements live in a mapping derived from `pos`.
type Array[V any] struct {
	length   *Uint256
	elements *Mapping[index, V]
}

func NewArray[V any](context *Context, pos farm.Bytes32) *Array[V] {
	return &Array[V]{
		length:   NewUint256(context, pos),
		elements: NewMapping[index, V](context, pos),
	}
}

func (a *Array[V]) Len() (uint64, error) {
	n, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (a *Array[V]) At(i uint64) (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return value, err
	}
	if i >= n {
		return value, ErrIndexOutOfRange
	}
	return a.elements.Get(index(i))
}

func (a *Array[V]) Push(value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if err := a.elements.Set(index(n), value); err != nil {
		return err
	}
	return a.length.Set(new(big.Int).SetUint64(n + 1))
}

// All returns a copy of all elements in insertion order.
func (a *Array[V]) All() ([]V, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	values := make([]V, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := a.elements.Get(index(i))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
