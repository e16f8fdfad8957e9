// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
)

var (
	ErrUnderflow = errors.New("uint256 underflow")
	ErrOverflow  = errors.New("uint256 overflow")
)

// Uint256 is an unsigned 256 bit integer held in one storage word.
// Arithmetic fails instead of wrapping.
type Uint256 struct {
	word
}

func NewUint256(context *Context, pos farm.Bytes32) *Uint256 {
	return &Uint256{word{context, pos}}
}

func (u *Uint256) get() (*uint256.Int, error) {
	v, err := u.load()
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(v[:]), nil
}

func (u *Uint256) set(v *uint256.Int) {
	u.store(v.Bytes32())
}

func (u *Uint256) Get() (*big.Int, error) {
	v, err := u.get()
	if err != nil {
		return nil, err
	}
	return v.ToBig(), nil
}

// Set stores value. Negative values and values wider than 256 bits fail with ErrOverflow.
func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 {
		return ErrOverflow
	}
	v, overflow := uint256.FromBig(value)
	if overflow {
		return ErrOverflow
	}
	u.set(v)
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	return u.apply(value, func(cur, delta *uint256.Int) (*uint256.Int, error) {
		if _, overflow := cur.AddOverflow(cur, delta); overflow {
			return nil, ErrOverflow
		}
		return cur, nil
	})
}

func (u *Uint256) Sub(value *big.Int) error {
	return u.apply(value, func(cur, delta *uint256.Int) (*uint256.Int, error) {
		if _, underflow := cur.SubOverflow(cur, delta); underflow {
			return nil, ErrUnderflow
		}
		return cur, nil
	})
}

func (u *Uint256) apply(value *big.Int, op func(cur, delta *uint256.Int) (*uint256.Int, error)) error {
	if value.Sign() < 0 {
		return ErrOverflow
	}
	delta, overflow := uint256.FromBig(value)
	if overflow {
		return ErrOverflow
	}
	cur, err := u.get()
	if err != nil {
		return err
	}
	next, err := op(cur, delta)
	if err != nil {
		return err
	}
	u.set(next)
	return nil
}
