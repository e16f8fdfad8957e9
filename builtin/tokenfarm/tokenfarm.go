// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/builtin/token"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/access"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/allowlist"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/ledger"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/oracle"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/state"
)

var logger = log.WithContext("pkg", "tokenfarm")

var slotRewardToken = farm.BytesToBytes32([]byte("reward-token"))

// TokenFarm implements the farm contract: stake custody, price feed lookup and reward issuance.
type TokenFarm struct {
	addr  farm.Address
	state *state.State

	rewardToken *solidity.Address

	accessService    *access.Service
	allowlistService *allowlist.Service
	oracleService    *oracle.Service
	ledgerService    *ledger.Service
}

// New binds the farm contract at addr.
func New(addr farm.Address, st *state.State) *TokenFarm {
	sctx := solidity.NewContext(addr, st)
	return &TokenFarm{
		addr:             addr,
		state:            st,
		rewardToken:      solidity.NewAddress(sctx, slotRewardToken),
		accessService:    access.New(sctx),
		allowlistService: allowlist.New(sctx),
		oracleService:    oracle.New(sctx),
		ledgerService:    ledger.New(sctx),
	}
}

func (f *TokenFarm) Address() farm.Address {
	return f.addr
}

// Initialize sets the owner and the reward asset.
func (f *TokenFarm) Initialize(owner, rewardToken farm.Address) error {
	if rewardToken.IsZero() {
		return reverts.ErrInvalidAddress
	}
	if err := f.accessService.Initialize(owner); err != nil {
		return err
	}
	f.rewardToken.Set(&rewardToken)
	logger.Info("initialized", "farm", f.addr, "owner", owner, "rewardToken", rewardToken)
	return nil
}

// RewardToken returns the address of the reward asset, which is also the designated staking token.
func (f *TokenFarm) RewardToken() (farm.Address, error) {
	return f.rewardToken.Get()
}

func (f *TokenFarm) Owner() (farm.Address, error) {
	return f.accessService.Owner()
}

func (f *TokenFarm) TransferOwnership(caller, newOwner farm.Address) error {
	logger.Debug("transferring ownership", "caller", caller, "newOwner", newOwner)

	if err := f.accessService.TransferOwnership(caller, newOwner); err != nil {
		logger.Info("transfer ownership failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("transferred ownership", "newOwner", newOwner)
	return nil
}

// AddAllowedTokens allows token for staking. Adding a token twice is a no-op.
func (f *TokenFarm) AddAllowedTokens(caller, token farm.Address) error {
	logger.Debug("adding allowed token", "caller", caller, "token", token)

	if err := f.accessService.RequireOwner(caller); err != nil {
		logger.Info("add allowed token failed", "token", token, "error", err)
		operationCount(opAddToken, err)
		return err
	}
	added, err := f.allowlistService.Add(token)
	if err != nil {
		logger.Info("add allowed token failed", "token", token, "error", err)
		operationCount(opAddToken, err)
		return err
	}

	operationCount(opAddToken, nil)
	logger.Info("added allowed token", "token", token, "new", added)
	return nil
}

func (f *TokenFarm) IsAllowed(token farm.Address) (bool, error) {
	return f.allowlistService.IsAllowed(token)
}

// AllowedToken returns the allowed token at position index, in insertion order.
func (f *TokenFarm) AllowedToken(index uint64) (farm.Address, error) {
	return f.allowlistService.At(index)
}

func (f *TokenFarm) AllowedTokens() ([]farm.Address, error) {
	return f.allowlistService.All()
}

// SetPriceFeedContract maps token to the feed quoting its price.
func (f *TokenFarm) SetPriceFeedContract(caller, token, feed farm.Address) error {
	logger.Debug("setting price feed", "caller", caller, "token", token, "feed", feed)

	if err := f.accessService.RequireOwner(caller); err != nil {
		logger.Info("set price feed failed", "token", token, "error", err)
		operationCount(opSetFeed, err)
		return err
	}
	if err := f.oracleService.SetFeed(token, feed); err != nil {
		logger.Info("set price feed failed", "token", token, "error", err)
		operationCount(opSetFeed, err)
		return err
	}

	operationCount(opSetFeed, nil)
	logger.Info("set price feed", "token", token, "feed", feed)
	return nil
}

// PriceFeed returns the feed mapped to token.
func (f *TokenFarm) PriceFeed(token farm.Address) (farm.Address, bool, error) {
	return f.oracleService.Feed(token)
}

// GetTokenValue returns the latest price of token and the decimals it is expressed in.
func (f *TokenFarm) GetTokenValue(token farm.Address) (*big.Int, uint8, error) {
	return f.oracleService.Value(token)
}

// StakeTokens moves amount of token from caller into the farm's custody and credits caller's stake.
// The caller must have approved the farm for at least amount.
func (f *TokenFarm) StakeTokens(caller farm.Address, amount *big.Int, tokenAddr farm.Address) error {
	logger.Debug("staking tokens", "caller", caller, "token", tokenAddr, "amount", amount)

	if err := f.stake(caller, amount, tokenAddr); err != nil {
		logger.Info("stake failed", "caller", caller, "token", tokenAddr, "error", err)
		operationCount(opStake, err)
		return err
	}

	operationCount(opStake, nil)
	logger.Info("staked tokens", "caller", caller, "token", tokenAddr)
	return nil
}

func (f *TokenFarm) stake(caller farm.Address, amount *big.Int, tokenAddr farm.Address) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}
	allowed, err := f.allowlistService.IsAllowed(tokenAddr)
	if err != nil {
		return err
	}
	if !allowed {
		return reverts.ErrTokenNotAllowed
	}
	if err := token.New(tokenAddr, f.state).TransferFrom(f.addr, caller, f.addr, amount); err != nil {
		return errors.WithMessage(err, "custody transfer")
	}
	return f.ledgerService.Credit(caller, tokenAddr, amount)
}

// UnstakeTokens returns caller's entire stake in token. Partial withdrawal is not supported.
func (f *TokenFarm) UnstakeTokens(caller, tokenAddr farm.Address) (*big.Int, error) {
	logger.Debug("unstaking tokens", "caller", caller, "token", tokenAddr)

	amount, err := f.ledgerService.Withdraw(caller, tokenAddr)
	if err != nil {
		logger.Info("unstake failed", "caller", caller, "token", tokenAddr, "error", err)
		operationCount(opUnstake, err)
		return nil, err
	}
	if err := token.New(tokenAddr, f.state).Transfer(f.addr, caller, amount); err != nil {
		logger.Info("unstake failed", "caller", caller, "token", tokenAddr, "error", err)
		operationCount(opUnstake, err)
		return nil, errors.WithMessage(err, "custody transfer")
	}

	operationCount(opUnstake, nil)
	logger.Info("unstaked tokens", "caller", caller, "token", tokenAddr, "amount", amount)
	return amount, nil
}

// StakingBalance returns the stake of identity in token.
func (f *TokenFarm) StakingBalance(token, identity farm.Address) (*big.Int, error) {
	return f.ledgerService.Balance(token, identity)
}

// TotalStaked returns the amount of token held in custody for all stakers.
func (f *TokenFarm) TotalStaked(token farm.Address) (*big.Int, error) {
	return f.ledgerService.TotalStaked(token)
}

func (f *TokenFarm) UniqueTokensStaked(identity farm.Address) (uint64, error) {
	return f.ledgerService.UniqueTokens(identity)
}

// Staker returns the identity at position index of the staker list, in first-stake order.
func (f *TokenFarm) Staker(index uint64) (farm.Address, error) {
	return f.ledgerService.Staker(index)
}

func (f *TokenFarm) StakerCount() (uint64, error) {
	return f.ledgerService.StakerCount()
}

func (f *TokenFarm) Stakers() ([]farm.Address, error) {
	return f.ledgerService.Stakers()
}
