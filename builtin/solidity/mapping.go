// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tokenfarm/farm"
)

// Key is anything that can address a mapping entry.
type Key interface {
	Bytes() []byte
}

// Mapping stores rlp encoded values at blake2b(key | base). A missing entry reads as the
// zero value of V, with pointer types pointing at a fresh zero value.
type Mapping[K Key, V any] struct {
	context *Context
	base    farm.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos farm.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context, pos}
}

func (m *Mapping[K, V]) position(key K) farm.Bytes32 {
	return farm.Blake2b(key.Bytes(), m.base.Bytes())
}

func zero[V any]() (v V) {
	if t := reflect.TypeFor[V](); t.Kind() == reflect.Pointer {
		v = reflect.New(t.Elem()).Interface().(V)
	}
	return
}

func (m *Mapping[K, V]) Get(key K) (V, error) {
	value := zero[V]()
	err := m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return value, err
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the entry, later reads return the zero value.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}
