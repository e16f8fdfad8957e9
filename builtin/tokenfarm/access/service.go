// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
)

var slotOwner = farm.BytesToBytes32([]byte("owner"))

// Service guards configuration mutators behind a single owner.
type Service struct {
	owner *solidity.Address
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		owner: solidity.NewAddress(sctx, slotOwner),
	}
}

// Initialize sets the owner, it can be done once.
func (s *Service) Initialize(owner farm.Address) error {
	if owner.IsZero() {
		return reverts.ErrInvalidAddress
	}
	current, err := s.owner.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return errors.Errorf("owner already set to %v", current)
	}
	s.owner.Set(&owner)
	return nil
}

func (s *Service) Owner() (farm.Address, error) {
	return s.owner.Get()
}

// RequireOwner fails with ErrUnauthorized unless caller is the owner.
func (s *Service) RequireOwner(caller farm.Address) error {
	owner, err := s.owner.Get()
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != caller {
		return reverts.ErrUnauthorized
	}
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func (s *Service) TransferOwnership(caller, newOwner farm.Address) error {
	if err := s.RequireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.ErrInvalidAddress
	}
	s.owner.Set(&newOwner)
	return nil
}
