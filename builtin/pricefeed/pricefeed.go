// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pricefeed

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/state"
)

var logger = log.WithContext("pkg", "pricefeed")

var slotRound = farm.BytesToBytes32([]byte("round"))

// Round is the latest answer of a feed.
type Round struct {
	ID        uint64
	Answer    *big.Int
	Decimals  uint8
	UpdatedAt uint64
}

// Feed binds an aggregator style price feed stored at addr.
// The answer is refreshed from outside, the farm only reads it.
type Feed struct {
	addr  farm.Address
	state *state.State
}

func New(addr farm.Address, st *state.State) *Feed {
	return &Feed{addr, st}
}

func (f *Feed) Address() farm.Address {
	return f.addr
}

func (f *Feed) getRound() (*Round, error) {
	var r Round
	err := f.state.DecodeStorage(f.addr, slotRound, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &r)
	})
	if err != nil {
		return nil, err
	}
	if r.Answer == nil {
		r.Answer = new(big.Int)
	}
	return &r, nil
}

func (f *Feed) setRound(r *Round) error {
	return f.state.EncodeStorage(f.addr, slotRound, func() ([]byte, error) {
		return rlp.EncodeToBytes(r)
	})
}

// Initialize sets decimals and the first answer, it starts round 1.
func (f *Feed) Initialize(decimals uint8, answer *big.Int, updatedAt uint64) error {
	if answer == nil || answer.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	return f.setRound(&Round{
		ID:        1,
		Answer:    new(big.Int).Set(answer),
		Decimals:  decimals,
		UpdatedAt: updatedAt,
	})
}

// UpdateAnswer publishes a new answer as the next round.
func (f *Feed) UpdateAnswer(answer *big.Int, updatedAt uint64) error {
	if answer == nil || answer.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	r, err := f.getRound()
	if err != nil {
		return err
	}
	r.ID++
	r.Answer = new(big.Int).Set(answer)
	r.UpdatedAt = updatedAt
	if err := f.setRound(r); err != nil {
		return err
	}
	logger.Debug("answer updated", "feed", f.addr, "round", r.ID, "answer", answer)
	return nil
}

// LatestRoundData returns the most recent round. A feed never initialized returns round 0 with a zero answer.
func (f *Feed) LatestRoundData() (*Round, error) {
	return f.getRound()
}

func (f *Feed) Decimals() (uint8, error) {
	r, err := f.getRound()
	if err != nil {
		return 0, err
	}
	return r.Decimals, nil
}
