// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Revert kinds raised by the built-in contracts.
// Match them with errors.Is, they survive pkg/errors wrapping.
var (
	ErrUnauthorized          = New("unauthorized")
	ErrTokenNotAllowed       = New("token not allowed")
	ErrInvalidAmount         = New("invalid amount")
	ErrNothingStaked         = New("nothing staked")
	ErrNoPriceFeed           = New("no price feed")
	ErrIndexOutOfRange       = New("index out of range")
	ErrInsufficientBalance   = New("insufficient balance")
	ErrInsufficientAllowance = New("insufficient allowance")
	ErrInvalidAddress        = New("invalid address")
	ErrValueOverflow         = New("value overflow")
)

// ErrRevert aborts a contract call because of its input or the current state.
// It is never caused by a storage failure.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{message}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Reason returns the revert carried by err, or nil.
func Reason(err error) *ErrRevert {
	var r *ErrRevert
	if errors.As(err, &r) {
		return r
	}
	return nil
}

func IsRevertErr(err error) bool {
	return Reason(err) != nil
}
