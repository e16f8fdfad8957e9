// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allowlist

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
)

var (
	slotTokens  = farm.BytesToBytes32([]byte("allowed-tokens"))
	slotAllowed = farm.BytesToBytes32([]byte("is-allowed"))
)

// Service is the ordered set of tokens accepted for staking.
// Enumeration follows insertion order, entries are never removed.
type Service struct {
	tokens  *solidity.Array[farm.Address]
	allowed *solidity.Mapping[farm.Address, bool]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		tokens:  solidity.NewArray[farm.Address](sctx, slotTokens),
		allowed: solidity.NewMapping[farm.Address, bool](sctx, slotAllowed),
	}
}

// Add appends token unless already present. It reports whether the set changed.
func (s *Service) Add(token farm.Address) (bool, error) {
	if token.IsZero() {
		return false, reverts.ErrInvalidAddress
	}
	ok, err := s.allowed.Get(token)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := s.tokens.Push(token); err != nil {
		return false, err
	}
	if err := s.allowed.Set(token, true); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) IsAllowed(token farm.Address) (bool, error) {
	return s.allowed.Get(token)
}

// At returns the token added at position index.
func (s *Service) At(index uint64) (farm.Address, error) {
	token, err := s.tokens.At(index)
	if errors.Is(err, solidity.ErrIndexOutOfRange) {
		return farm.Address{}, reverts.ErrIndexOutOfRange
	}
	return token, err
}

func (s *Service) Len() (uint64, error) {
	return s.tokens.Len()
}

func (s *Service) All() ([]farm.Address, error) {
	return s.tokens.All()
}
