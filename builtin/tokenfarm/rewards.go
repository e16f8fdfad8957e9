// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/token"
	"github.com/vechain/tokenfarm/farm"
)

// maxDecimals is the largest exponent whose power of ten fits in 256 bits.
const maxDecimals = 77

// Reward is an amount of reward token paid to a staker.
type Reward struct {
	Staker farm.Address
	Amount *big.Int
}

// value computes balance * price / 10^decimals, failing rather than wrapping on overflow.
func value(balance, price *big.Int, decimals uint8) (*uint256.Int, error) {
	if decimals > maxDecimals {
		return nil, errors.WithMessagef(reverts.ErrValueOverflow, "decimals %d", decimals)
	}
	b, overflow := uint256.FromBig(balance)
	if overflow {
		return nil, reverts.ErrValueOverflow
	}
	p, overflow := uint256.FromBig(price)
	if overflow {
		return nil, reverts.ErrValueOverflow
	}
	scale := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))

	v, overflow := new(uint256.Int).MulDivOverflow(b, p, scale)
	if overflow {
		return nil, reverts.ErrValueOverflow
	}
	return v, nil
}

func (f *TokenFarm) singleTokenValue(identity, token farm.Address) (*uint256.Int, error) {
	balance, err := f.ledgerService.Balance(token, identity)
	if err != nil {
		return nil, err
	}
	if balance.Sign() == 0 {
		return new(uint256.Int), nil
	}
	price, decimals, err := f.oracleService.Value(token)
	if err != nil {
		return nil, errors.WithMessagef(err, "token %v", token)
	}
	return value(balance, price, decimals)
}

// GetUserSingleTokenValue returns the value of identity's stake in token, 0 when nothing is staked.
func (f *TokenFarm) GetUserSingleTokenValue(identity, token farm.Address) (*big.Int, error) {
	v, err := f.singleTokenValue(identity, token)
	if err != nil {
		return nil, err
	}
	return v.ToBig(), nil
}

// GetUserTotalValue sums the value of identity's stake over the allowed tokens, in insertion order.
func (f *TokenFarm) GetUserTotalValue(identity farm.Address) (*big.Int, error) {
	tokens, err := f.allowlistService.All()
	if err != nil {
		return nil, err
	}
	total := new(uint256.Int)
	for _, tk := range tokens {
		v, err := f.singleTokenValue(identity, tk)
		if err != nil {
			return nil, err
		}
		if _, overflow := total.AddOverflow(total, v); overflow {
			return nil, reverts.ErrValueOverflow
		}
	}
	return total.ToBig(), nil
}

// Reserve returns the reward token the farm can pay out, its balance minus staked custody.
func (f *TokenFarm) Reserve() (*big.Int, error) {
	rewardToken, err := f.rewardToken.Get()
	if err != nil {
		return nil, err
	}
	balance, err := token.New(rewardToken, f.state).BalanceOf(f.addr)
	if err != nil {
		return nil, err
	}
	custody, err := f.ledgerService.TotalStaked(rewardToken)
	if err != nil {
		return nil, err
	}
	return balance.Sub(balance, custody), nil
}

// pay transfers amount of reward token from the reserve to recipient.
func (f *TokenFarm) pay(recipient farm.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	reserve, err := f.Reserve()
	if err != nil {
		return err
	}
	if reserve.Cmp(amount) < 0 {
		return errors.WithMessagef(reverts.ErrInsufficientBalance, "reward reserve %s, required %s", reserve, amount)
	}
	rewardToken, err := f.rewardToken.Get()
	if err != nil {
		return err
	}
	if err := token.New(rewardToken, f.state).Transfer(f.addr, recipient, amount); err != nil {
		return err
	}
	metricRewards().Add(1)
	return nil
}

// IssueTokensFor pays identity its total staked value in reward token. Stakes are unchanged.
func (f *TokenFarm) IssueTokensFor(identity farm.Address) (*big.Int, error) {
	logger.Debug("issuing tokens", "staker", identity)

	amount, err := f.GetUserTotalValue(identity)
	if err == nil {
		err = f.pay(identity, amount)
	}
	if err != nil {
		logger.Info("issue tokens failed", "staker", identity, "error", err)
		operationCount(opIssue, err)
		return nil, err
	}

	operationCount(opIssue, nil)
	logger.Info("issued tokens", "staker", identity, "amount", amount)
	return amount, nil
}

// IssueTokens pays every staker its total staked value, in staker list order.
// All rewards are computed before the first payment.
func (f *TokenFarm) IssueTokens(caller farm.Address) ([]Reward, error) {
	logger.Debug("issuing tokens to stakers", "caller", caller)

	rewards, err := f.issueAll()
	if err != nil {
		logger.Info("issue tokens to stakers failed", "caller", caller, "error", err)
		operationCount(opIssue, err)
		return nil, err
	}

	operationCount(opIssue, nil)
	logger.Info("issued tokens to stakers", "stakers", len(rewards))
	return rewards, nil
}

func (f *TokenFarm) issueAll() ([]Reward, error) {
	stakers, err := f.ledgerService.Stakers()
	if err != nil {
		return nil, err
	}
	rewards := make([]Reward, 0, len(stakers))
	for _, staker := range stakers {
		amount, err := f.GetUserTotalValue(staker)
		if err != nil {
			return nil, errors.WithMessagef(err, "staker %v", staker)
		}
		rewards = append(rewards, Reward{Staker: staker, Amount: amount})
	}
	for _, r := range rewards {
		if err := f.pay(r.Staker, r.Amount); err != nil {
			return nil, errors.WithMessagef(err, "staker %v", r.Staker)
		}
	}
	return rewards, nil
}

// IssueSingleToken pays identity the value of its stake in the reward token only.
func (f *TokenFarm) IssueSingleToken(caller, identity farm.Address) (*big.Int, error) {
	logger.Debug("issuing single token", "caller", caller, "staker", identity)

	amount, err := f.issueSingle(identity)
	if err != nil {
		logger.Info("issue single token failed", "staker", identity, "error", err)
		operationCount(opIssue, err)
		return nil, err
	}

	operationCount(opIssue, nil)
	logger.Info("issued single token", "staker", identity, "amount", amount)
	return amount, nil
}

func (f *TokenFarm) issueSingle(identity farm.Address) (*big.Int, error) {
	rewardToken, err := f.rewardToken.Get()
	if err != nil {
		return nil, err
	}
	amount, err := f.GetUserSingleTokenValue(identity, rewardToken)
	if err != nil {
		return nil, err
	}
	if err := f.pay(identity, amount); err != nil {
		return nil, err
	}
	return amount, nil
}
