// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
)

var (
	slotBalances = farm.BytesToBytes32([]byte("staking-balances"))
	slotUnique   = farm.BytesToBytes32([]byte("unique-tokens"))
	slotStakers  = farm.BytesToBytes32([]byte("stakers"))
	slotIsStaker = farm.BytesToBytes32([]byte("is-staker"))
	slotTotals   = farm.BytesToBytes32([]byte("total-staked"))
)

// Service records stake per (token, identity) and the ordered list of stakers.
//
// Invariants:
//   - unique[identity] equals the number of tokens with a positive balance for identity
//   - stakers is append only and holds each identity at most once, in first-stake order
//   - totals[token] is the sum of all balances in token, i.e. what the farm holds in custody
type Service struct {
	balances *solidity.Mapping[farm.Bytes32, *big.Int]
	totals   *solidity.Mapping[farm.Address, *big.Int]
	unique   *solidity.Mapping[farm.Address, uint64]
	stakers  *solidity.Array[farm.Address]
	isStaker *solidity.Mapping[farm.Address, bool]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		balances: solidity.NewMapping[farm.Bytes32, *big.Int](sctx, slotBalances),
		totals:   solidity.NewMapping[farm.Address, *big.Int](sctx, slotTotals),
		unique:   solidity.NewMapping[farm.Address, uint64](sctx, slotUnique),
		stakers:  solidity.NewArray[farm.Address](sctx, slotStakers),
		isStaker: solidity.NewMapping[farm.Address, bool](sctx, slotIsStaker),
	}
}

func balanceKey(token, identity farm.Address) farm.Bytes32 {
	return farm.Blake2b(token.Bytes(), identity.Bytes())
}

// Balance returns the amount of token staked by identity.
func (s *Service) Balance(token, identity farm.Address) (*big.Int, error) {
	return s.balances.Get(balanceKey(token, identity))
}

// TotalStaked returns the sum of all stakes in token.
func (s *Service) TotalStaked(token farm.Address) (*big.Int, error) {
	return s.totals.Get(token)
}

func (s *Service) addTotal(token farm.Address, delta *big.Int) error {
	total, err := s.totals.Get(token)
	if err != nil {
		return err
	}
	total.Add(total, delta)
	if total.Sign() < 0 {
		return errors.Errorf("total staked of %v below zero", token)
	}
	return s.totals.Set(token, total)
}

// UniqueTokens returns how many distinct tokens identity has a positive stake in.
func (s *Service) UniqueTokens(identity farm.Address) (uint64, error) {
	return s.unique.Get(identity)
}

// Credit adds amount to the stake of identity in token.
func (s *Service) Credit(identity, token farm.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}
	key := balanceKey(token, identity)
	bal, err := s.balances.Get(key)
	if err != nil {
		return err
	}
	if bal.Sign() == 0 {
		n, err := s.unique.Get(identity)
		if err != nil {
			return err
		}
		if err := s.unique.Set(identity, n+1); err != nil {
			return err
		}
	}
	if err := s.balances.Set(key, bal.Add(bal, amount)); err != nil {
		return err
	}
	if err := s.addTotal(token, amount); err != nil {
		return err
	}
	return s.addStaker(identity)
}

func (s *Service) addStaker(identity farm.Address) error {
	known, err := s.isStaker.Get(identity)
	if err != nil {
		return err
	}
	if known {
		return nil
	}
	if err := s.stakers.Push(identity); err != nil {
		return err
	}
	return s.isStaker.Set(identity, true)
}

// Withdraw zeroes the stake of identity in token and returns the withdrawn amount.
func (s *Service) Withdraw(identity, token farm.Address) (*big.Int, error) {
	key := balanceKey(token, identity)
	bal, err := s.balances.Get(key)
	if err != nil {
		return nil, err
	}
	if bal.Sign() == 0 {
		return nil, reverts.ErrNothingStaked
	}
	n, err := s.unique.Get(identity)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.Errorf("unique token count of %v is zero with a positive balance", identity)
	}
	if err := s.unique.Set(identity, n-1); err != nil {
		return nil, err
	}
	s.balances.Delete(key)
	if err := s.addTotal(token, new(big.Int).Neg(bal)); err != nil {
		return nil, err
	}
	return bal, nil
}

// Staker returns the identity at position index of the staker list.
func (s *Service) Staker(index uint64) (farm.Address, error) {
	staker, err := s.stakers.At(index)
	if errors.Is(err, solidity.ErrIndexOutOfRange) {
		return farm.Address{}, reverts.ErrIndexOutOfRange
	}
	return staker, err
}

func (s *Service) StakerCount() (uint64, error) {
	return s.stakers.Len()
}

func (s *Service) Stakers() ([]farm.Address, error) {
	return s.stakers.All()
}
