// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/farm"
)

// CheckCaller rejects a request body claiming to be sent by a built-in contract.
// Those addresses only move funds from inside the farm.
func CheckCaller(caller farm.Address) error {
	if builtin.IsContract(caller) {
		return errors.WithMessage(reverts.ErrInvalidAddress, "caller")
	}
	return nil
}
