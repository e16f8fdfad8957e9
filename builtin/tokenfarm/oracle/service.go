// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package oracle

import (
	"math/big"

	"github.com/vechain/tokenfarm/builtin/pricefeed"
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
)

var slotFeeds = farm.BytesToBytes32([]byte("price-feeds"))

// Service maps tokens to the price feed contract quoting them.
type Service struct {
	sctx  *solidity.Context
	feeds *solidity.Mapping[farm.Address, farm.Address]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		sctx:  sctx,
		feeds: solidity.NewMapping[farm.Address, farm.Address](sctx, slotFeeds),
	}
}

// SetFeed maps token to feed, replacing any previous mapping.
func (s *Service) SetFeed(token, feed farm.Address) error {
	if token.IsZero() || feed.IsZero() {
		return reverts.ErrInvalidAddress
	}
	return s.feeds.Set(token, feed)
}

// Feed returns the feed mapped to token, ok is false when there is none.
func (s *Service) Feed(token farm.Address) (feed farm.Address, ok bool, err error) {
	feed, err = s.feeds.Get(token)
	if err != nil {
		return farm.Address{}, false, err
	}
	return feed, !feed.IsZero(), nil
}

// Value returns the latest answer of the feed mapped to token and its decimals.
func (s *Service) Value(token farm.Address) (*big.Int, uint8, error) {
	feed, ok, err := s.Feed(token)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, reverts.ErrNoPriceFeed
	}
	round, err := pricefeed.New(feed, s.sctx.State()).LatestRoundData()
	if err != nil {
		return nil, 0, err
	}
	return round.Answer, round.Decimals, nil
}
