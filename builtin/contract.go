// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/tokenfarm/farm"
)

type contract struct {
	Name    string
	Address farm.Address
}

// newContract places a built-in contract at the address spelled by its name.
func newContract(name string) *contract {
	return &contract{
		name,
		farm.BytesToAddress([]byte(name)),
	}
}
