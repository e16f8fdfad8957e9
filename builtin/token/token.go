// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a fungible token ledger stored natively in contract storage.
// It is the transfer capability the farm uses for custody of stake and for paying rewards.
package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/state"
)

var logger = log.WithContext("pkg", "token")

var (
	slotMetadata    = farm.BytesToBytes32([]byte("metadata"))
	slotTotalSupply = farm.BytesToBytes32([]byte("total-supply"))
	slotBalances    = farm.BytesToBytes32([]byte("balances"))
	slotAllowances  = farm.BytesToBytes32([]byte("allowances"))
)

// Metadata describes the token, it is written once by Initialize.
type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// Token binds the token contract at addr.
type Token struct {
	addr        farm.Address
	state       *state.State
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[farm.Address, *big.Int]
	allowances  *solidity.Mapping[farm.Bytes32, *big.Int]
}

func New(addr farm.Address, st *state.State) *Token {
	sctx := solidity.NewContext(addr, st)
	return &Token{
		addr:        addr,
		state:       st,
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		balances:    solidity.NewMapping[farm.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[farm.Bytes32, *big.Int](sctx, slotAllowances),
	}
}

func allowanceKey(owner, spender farm.Address) farm.Bytes32 {
	return farm.Blake2b(owner.Bytes(), spender.Bytes())
}

// Address returns the contract address of the token.
func (t *Token) Address() farm.Address {
	return t.addr
}

// Initialize writes the token metadata.
func (t *Token) Initialize(name, symbol string, decimals uint8) error {
	return t.state.EncodeStorage(t.addr, slotMetadata, func() ([]byte, error) {
		return rlp.EncodeToBytes(&Metadata{Name: name, Symbol: symbol, Decimals: decimals})
	})
}

// Metadata returns name, symbol and decimals. An uninitialized token has empty metadata.
func (t *Token) Metadata() (*Metadata, error) {
	var md Metadata
	err := t.state.DecodeStorage(t.addr, slotMetadata, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &md)
	})
	if err != nil {
		return nil, err
	}
	return &md, nil
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr farm.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

func (t *Token) Allowance(owner, spender farm.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey(owner, spender))
}

// Mint creates amount new units credited to recipient.
func (t *Token) Mint(recipient farm.Address, amount *big.Int) error {
	if recipient.IsZero() {
		return reverts.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if err := t.totalSupply.Add(amount); err != nil {
		if errors.Is(err, solidity.ErrOverflow) {
			return errors.WithMessage(reverts.ErrValueOverflow, "total supply")
		}
		return err
	}
	bal, err := t.balances.Get(recipient)
	if err != nil {
		return err
	}
	if err := t.balances.Set(recipient, bal.Add(bal, amount)); err != nil {
		return err
	}
	logger.Debug("minted", "token", t.addr, "to", recipient, "amount", amount)
	return nil
}

// Transfer moves amount from sender to recipient.
func (t *Token) Transfer(sender, recipient farm.Address, amount *big.Int) error {
	if recipient.IsZero() {
		return reverts.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}

	from, err := t.balances.Get(sender)
	if err != nil {
		return err
	}
	if from.Cmp(amount) < 0 {
		return errors.WithMessagef(reverts.ErrInsufficientBalance, "balance %s, required %s", from, amount)
	}
	if err := t.balances.Set(sender, from.Sub(from, amount)); err != nil {
		return err
	}

	to, err := t.balances.Get(recipient)
	if err != nil {
		return err
	}
	if err := t.balances.Set(recipient, to.Add(to, amount)); err != nil {
		return err
	}
	logger.Debug("transferred", "token", t.addr, "from", sender, "to", recipient, "amount", amount)
	return nil
}

// Approve sets the amount spender may move out of owner's balance.
func (t *Token) Approve(owner, spender farm.Address, amount *big.Int) error {
	if spender.IsZero() {
		return reverts.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	return t.allowances.Set(allowanceKey(owner, spender), new(big.Int).Set(amount))
}

// TransferFrom moves amount from owner to recipient on behalf of spender, consuming allowance.
func (t *Token) TransferFrom(spender, owner, recipient farm.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	key := allowanceKey(owner, spender)
	allowed, err := t.allowances.Get(key)
	if err != nil {
		return err
	}
	if allowed.Cmp(amount) < 0 {
		return errors.WithMessagef(reverts.ErrInsufficientAllowance, "allowance %s, required %s", allowed, amount)
	}
	if err := t.Transfer(owner, recipient, amount); err != nil {
		return err
	}
	return t.allowances.Set(key, allowed.Sub(allowed, amount))
}
