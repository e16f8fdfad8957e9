// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/tokenfarm/farm"
)

// Address is an address held in one storage word. Unset reads as the zero address.
type Address struct {
	word
}

func NewAddress(context *Context, pos farm.Bytes32) *Address {
	return &Address{word{context, pos}}
}

func (a *Address) Get() (farm.Address, error) {
	v, err := a.load()
	if err != nil {
		return farm.Address{}, err
	}
	return farm.BytesToAddress(v.Bytes()), nil
}

// Set stores addr, nil clears the word.
func (a *Address) Set(addr *farm.Address) {
	var v farm.Bytes32
	if addr != nil {
		v = farm.BytesToBytes32(addr.Bytes())
	}
	a.store(v)
}
